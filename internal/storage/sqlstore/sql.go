package sqlstore

// Queries are written with `?` placeholders and rebound per driver.
// Both listing queries return the same columns in the same order so one
// scanner serves the join path and the view path.

// -----------------------------------------------------------------------------
// LISTINGS
// -----------------------------------------------------------------------------

// Every related table is LEFT JOINed; a missing extension row yields NULLs.
// minimum_nights comes from listings, not min_max_nights.
const listListingsSQL = `
SELECT
  l.listing_id,
  l.latitude,
  l.longitude,
  c.hover_description,
  c.listing_url,
  l.price,
  c.property_type,
  c.room_type,
  l.accommodates,
  r.number_of_reviews,
  r.number_of_reviews_ltm,
  r.number_of_reviews_l30d,
  r.first_review,
  r.last_review,
  r.review_scores_rating,
  r.reviews_per_month,
  l.host_id,
  h.host_name,
  h.host_identity_verified,
  h.host_listings_count,
  h.host_total_listings_count,
  c.license,
  n.neighbourhood,
  l.minimum_nights
FROM listings l
LEFT JOIN hosts h               ON h.host_id = l.host_id
LEFT JOIN neighbourhoods n      ON n.neighbourhood_id = l.neighbourhood_id
LEFT JOIN listing_categorical c ON c.listing_id = l.listing_id
LEFT JOIN listing_reviews r     ON r.listing_id = l.listing_id
ORDER BY l.listing_id
`

const listListingsViewSQL = `
SELECT
  listing_id,
  latitude,
  longitude,
  hover_description,
  listing_url,
  price,
  property_type,
  room_type,
  accommodates,
  number_of_reviews,
  number_of_reviews_ltm,
  number_of_reviews_l30d,
  first_review,
  last_review,
  review_scores_rating,
  reviews_per_month,
  host_id,
  host_name,
  host_identity_verified,
  host_listings_count,
  host_total_listings_count,
  license,
  neighbourhood,
  minimum_nights
FROM map_listings
ORDER BY listing_id
`

// -----------------------------------------------------------------------------
// PRICE / AVAILABILITY
// -----------------------------------------------------------------------------

// Calendar -> listing -> neighbourhood is many-to-one at each hop, so each
// calendar row lands in exactly one (neighbourhood, date) group.
const priceAvailabilitySQL = `
SELECT
  n.neighbourhood,
  c.date,
  AVG(c.price) AS avg_price,
  COUNT(*)     AS available_listings
FROM calendar c
JOIN listings l       ON l.listing_id = c.listing_id
JOIN neighbourhoods n ON n.neighbourhood_id = l.neighbourhood_id
WHERE c.available = ? AND c.price <= ?
GROUP BY n.neighbourhood, c.date
ORDER BY n.neighbourhood, c.date
`

// The view carries its own filter.
const priceAvailabilityViewSQL = `
SELECT neighbourhood, date, avg_price, available_listings
FROM price_availability
ORDER BY neighbourhood, date
`

// -----------------------------------------------------------------------------
// METADATA
// -----------------------------------------------------------------------------

const scrapeDatesSQL = `SELECT * FROM metadata`
