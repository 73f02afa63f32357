package mysql

const insertPropertySQL = `
INSERT INTO properties
  (vendor_email, name, price, image, description, category, location, created_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?)
`

const updatePropertySQL = `
UPDATE properties SET
  name        = ?,
  price       = ?,
  image       = ?,
  description = ?,
  category    = ?,
  location    = ?,
  updated_at  = CURRENT_TIMESTAMP
WHERE id = ?
`

const deletePropertySQL = `DELETE FROM properties WHERE id = ?`

const propertyColumns = `
  id, vendor_email, name, price, image, description, category, location, created_at, updated_at`

const getPropertySQL = `
SELECT` + propertyColumns + `
FROM properties
WHERE id = ?
`

const listPropertiesSQL = `
SELECT` + propertyColumns + `
FROM properties
ORDER BY id
`

// Newest first; aligns with the index on (created_at, id).
const listFeaturedSQL = `
SELECT` + propertyColumns + `
FROM properties
ORDER BY created_at DESC, id DESC
LIMIT ?
`

const listByVendorSQL = `
SELECT` + propertyColumns + `
FROM properties
WHERE vendor_email = ?
ORDER BY id
`

// Note: `text` is reserved; keep it quoted everywhere.
const insertReviewSQL = "INSERT INTO reviews\n" +
	"  (property_id, reviewer_email, `text`, rating, property_name, thumbnail, created_at)\n" +
	"VALUES (?, ?, ?, ?, ?, ?, ?)\n"

const reviewColumns = "\n  id, property_id, reviewer_email, `text`, rating, property_name, thumbnail, created_at, updated_at"

const listReviewsByReviewerSQL = `
SELECT` + reviewColumns + `
FROM reviews
WHERE reviewer_email = ?
ORDER BY id
`

const listReviewsByPropertySQL = `
SELECT` + reviewColumns + `
FROM reviews
WHERE property_id = ?
ORDER BY created_at DESC, id DESC
`

const syncReviewDenormSQL = `
UPDATE reviews SET
  property_name = ?,
  thumbnail     = ?,
  updated_at    = CURRENT_TIMESTAMP
WHERE property_id = ?
`

const deleteReviewsByPropertySQL = `DELETE FROM reviews WHERE property_id = ?`

// -----------------------------------------------------------------------------
// RECONCILIATION QUERIES
// -----------------------------------------------------------------------------

// Properties whose referencing reviews carry stale denormalized fields.
const listStalePropertiesSQL = `
SELECT DISTINCT
  p.id, p.vendor_email, p.name, p.price, p.image, p.description, p.category, p.location, p.created_at, p.updated_at
FROM properties p
JOIN reviews r ON r.property_id = p.id
WHERE r.property_name <> p.name OR r.thumbnail <> p.image
LIMIT ?
`

// Reviews left behind by a delete cascade that failed after the
// property row was removed.
const deleteOrphanReviewsSQL = `
DELETE r FROM reviews r
LEFT JOIN properties p ON p.id = r.property_id
WHERE p.id IS NULL
`
