package repository

import (
    "context"
    "database/sql"
    "encoding/json"

    "github.com/iliyamo/gadget-market/internal/model"
)

// ListingRepo provides CRUD operations for listings.  Photos are
// stored as a JSON array in a text column; scanning converts them
// back to a string slice.  All timestamp fields are assumed to be
// stored in UTC.
type ListingRepo struct {
    db *sql.DB
}

// NewListingRepo returns a new ListingRepo bound to the given database.
func NewListingRepo(db *sql.DB) *ListingRepo { return &ListingRepo{db: db} }

// DB exposes the underlying handle so handlers can begin transactions
// spanning multiple repositories.
func (r *ListingRepo) DB() *sql.DB { return r.db }

const listingColumns = `id, seller_id, title, category, brand, model, cond, description, working_parts, location, seller_price, price, photos, status, created_at`

// scanListing reads one row into a model.Listing.  It accepts either
// a *sql.Row or *sql.Rows via the scanner interface.
func scanListing(scan func(dest ...any) error) (*model.Listing, error) {
    var l model.Listing
    var photos sql.NullString
    err := scan(
        &l.ID, &l.SellerID, &l.Title, &l.Category, &l.Brand, &l.Model,
        &l.Condition, &l.Description, &l.WorkingParts, &l.Location,
        &l.SellerPrice, &l.Price, &photos, &l.Status, &l.CreatedAt,
    )
    if err != nil {
        return nil, err
    }
    l.Photos = decodePhotos(photos)
    return &l, nil
}

func decodePhotos(raw sql.NullString) []string {
    out := []string{}
    if raw.Valid && raw.String != "" {
        _ = json.Unmarshal([]byte(raw.String), &out)
    }
    return out
}

func encodePhotos(photos []string) string {
    if photos == nil {
        photos = []string{}
    }
    b, _ := json.Marshal(photos)
    return string(b)
}

// Create inserts a new active listing and populates the generated ID
// and creation timestamp on the provided model.  Price and profit
// must already have been derived by the pricing policy; this method
// stores what it is given.
func (r *ListingRepo) Create(ctx context.Context, l *model.Listing) error {
    const q = `INSERT INTO listings (seller_id, title, category, brand, model, cond, description, working_parts, location, seller_price, price, photos, status)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q,
        l.SellerID, l.Title, l.Category, l.Brand, l.Model, l.Condition,
        l.Description, l.WorkingParts, l.Location, l.SellerPrice, l.Price,
        encodePhotos(l.Photos), model.ListingActive)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    l.ID = uint64(id)
    l.Status = model.ListingActive
    // Query back created_at so the response carries the DB clock.
    const sel = `SELECT created_at FROM listings WHERE id = ?`
    return r.db.QueryRowContext(ctx, sel, l.ID).Scan(&l.CreatedAt)
}

// GetByID returns a single listing regardless of status.  Sold
// listings stay individually fetchable for display.  sql.ErrNoRows
// is returned when the listing does not exist.
func (r *ListingRepo) GetByID(ctx context.Context, id uint64) (*model.Listing, error) {
    const q = `SELECT ` + listingColumns + ` FROM listings WHERE id = ?`
    return scanListing(r.db.QueryRowContext(ctx, q, id).Scan)
}

// GetForUpdateTx loads a listing inside a transaction with a row lock
// so concurrent request creation, acceptance and checkout serialize
// on the listing.  sql.ErrNoRows is returned when it does not exist.
func (r *ListingRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Listing, error) {
    const q = `SELECT ` + listingColumns + ` FROM listings WHERE id = ? FOR UPDATE`
    return scanListing(tx.QueryRowContext(ctx, q, id).Scan)
}

// MarkSoldTx transitions a listing from active to sold within the
// given transaction.  The status predicate in the UPDATE re-checks
// state at write time: if another checkout already closed the
// listing, zero rows change and false is returned, which the caller
// surfaces as a lost race.
func (r *ListingRepo) MarkSoldTx(ctx context.Context, tx *sql.Tx, id uint64) (bool, error) {
    const q = `UPDATE listings SET status = ? WHERE id = ? AND status = ?`
    res, err := tx.ExecContext(ctx, q, model.ListingSold, id, model.ListingActive)
    if err != nil {
        return false, err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return false, err
    }
    return n == 1, nil
}
