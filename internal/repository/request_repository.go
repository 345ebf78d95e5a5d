package repository

import (
    "context"
    "database/sql"

    "github.com/iliyamo/gadget-market/internal/model"
)

// RequestRepo provides CRUD operations for purchase requests.  The
// seller_id column is denormalized from the listing at creation so
// the incoming view needs no join through listings.  Status
// transitions are applied with guarded UPDATEs that re-check the
// current status at write time; a transition whose predicate no
// longer holds changes zero rows and the caller treats it as a lost
// race.
type RequestRepo struct {
    db *sql.DB
}

// NewRequestRepo returns a new RequestRepo bound to the given database.
func NewRequestRepo(db *sql.DB) *RequestRepo { return &RequestRepo{db: db} }

const requestColumns = `id, listing_id, buyer_id, seller_id, status, created_at, updated_at`

func scanRequest(scan func(dest ...any) error) (*model.PurchaseRequest, error) {
    var pr model.PurchaseRequest
    err := scan(&pr.ID, &pr.ListingID, &pr.BuyerID, &pr.SellerID, &pr.Status, &pr.CreatedAt, &pr.UpdatedAt)
    if err != nil {
        return nil, err
    }
    return &pr, nil
}

// HasPendingTx reports whether the buyer already has a pending
// request on the listing.  Runs inside the caller's transaction so
// the duplicate check and the insert see the same snapshot.
func (r *RequestRepo) HasPendingTx(ctx context.Context, tx *sql.Tx, listingID, buyerID uint64) (bool, error) {
    const q = `SELECT COUNT(*) FROM buy_requests WHERE listing_id = ? AND buyer_id = ? AND status = ?`
    var n int
    if err := tx.QueryRowContext(ctx, q, listingID, buyerID, model.RequestPending).Scan(&n); err != nil {
        return false, err
    }
    return n > 0, nil
}

// CreateTx inserts a new pending request within the scope of an
// existing transaction and populates the generated ID and timestamps
// on the provided record.  The caller must commit or rollback.
func (r *RequestRepo) CreateTx(ctx context.Context, tx *sql.Tx, pr *model.PurchaseRequest) error {
    const q = `INSERT INTO buy_requests (listing_id, buyer_id, seller_id, status) VALUES (?, ?, ?, ?)`
    res, err := tx.ExecContext(ctx, q, pr.ListingID, pr.BuyerID, pr.SellerID, model.RequestPending)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    pr.ID = uint64(id)
    pr.Status = model.RequestPending
    const sel = `SELECT created_at, updated_at FROM buy_requests WHERE id = ?`
    return tx.QueryRowContext(ctx, sel, pr.ID).Scan(&pr.CreatedAt, &pr.UpdatedAt)
}

// GetTx loads a request inside a transaction without locking it.
// Callers use it to learn the listing id before taking row locks in
// the global order (listing first, then request), so two checkouts on
// one listing cannot deadlock.  sql.ErrNoRows is returned when it
// does not exist.
func (r *RequestRepo) GetTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.PurchaseRequest, error) {
    const q = `SELECT ` + requestColumns + ` FROM buy_requests WHERE id = ?`
    return scanRequest(tx.QueryRowContext(ctx, q, id).Scan)
}

// GetForUpdateTx loads a request inside a transaction with a row
// lock.  The caller must already hold the listing lock; see GetTx.
// sql.ErrNoRows is returned when it does not exist.
func (r *RequestRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.PurchaseRequest, error) {
    const q = `SELECT ` + requestColumns + ` FROM buy_requests WHERE id = ? FOR UPDATE`
    return scanRequest(tx.QueryRowContext(ctx, q, id).Scan)
}

// SetStatusTx transitions a pending request to the given terminal
// status within the transaction.  The pending predicate re-checks
// state at write time; false means the request was decided by a
// concurrent caller in the meantime.
func (r *RequestRepo) SetStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status string) (bool, error) {
    const q = `UPDATE buy_requests SET status = ?, updated_at = NOW() WHERE id = ? AND status = ?`
    res, err := tx.ExecContext(ctx, q, status, id, model.RequestPending)
    if err != nil {
        return false, err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return false, err
    }
    return n == 1, nil
}

// RejectOthersTx rejects every live (pending or accepted) request on
// the listing except the winner.  Called only by order finalization,
// inside the same transaction that creates the order and closes the
// listing.
func (r *RequestRepo) RejectOthersTx(ctx context.Context, tx *sql.Tx, listingID, winnerID uint64) error {
    const q = `UPDATE buy_requests SET status = ?, updated_at = NOW()
               WHERE listing_id = ? AND id <> ? AND status IN (?, ?)`
    _, err := tx.ExecContext(ctx, q, model.RequestRejected, listingID, winnerID,
        model.RequestPending, model.RequestAccepted)
    return err
}

// BuyerRequestRow is the buyer's projection of their own requests,
// joined with listing display fields.
type BuyerRequestRow struct {
    ID           uint64  `json:"id"`
    ListingID    uint64  `json:"listing_id"`
    Status       string  `json:"status"`
    ListingTitle string  `json:"listing_title"`
    ListingPrice float64 `json:"listing_price"`
    ListingState string  `json:"listing_status"`
    CreatedAt    string  `json:"created_at"`
}

// ListByBuyer returns all requests filed by the buyer, newest first.
func (r *RequestRepo) ListByBuyer(ctx context.Context, buyerID uint64) ([]BuyerRequestRow, error) {
    const q = `SELECT br.id, br.listing_id, br.status,
                      l.title, l.price, l.status,
                      DATE_FORMAT(br.created_at, '%Y-%m-%dT%TZ')
               FROM buy_requests br
               JOIN listings l ON l.id = br.listing_id
               WHERE br.buyer_id = ?
               ORDER BY br.created_at DESC`
    rows, err := r.db.QueryContext(ctx, q, buyerID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]BuyerRequestRow, 0)
    for rows.Next() {
        var d BuyerRequestRow
        if err := rows.Scan(&d.ID, &d.ListingID, &d.Status, &d.ListingTitle, &d.ListingPrice, &d.ListingState, &d.CreatedAt); err != nil {
            return nil, err
        }
        out = append(out, d)
    }
    return out, rows.Err()
}

// SellerRequestRow is the seller's projection of incoming requests.
// Only the buyer's name and location are exposed; email and phone
// stay private until an order exists.
type SellerRequestRow struct {
    ID            uint64  `json:"id"`
    ListingID     uint64  `json:"listing_id"`
    Status        string  `json:"status"`
    ListingTitle  string  `json:"listing_title"`
    ListingPrice  float64 `json:"listing_price"`
    BuyerName     string  `json:"buyer_name"`
    BuyerLocation string  `json:"buyer_location"`
    CreatedAt     string  `json:"created_at"`
}

// ListBySeller returns all requests targeting the seller's listings,
// newest first.
func (r *RequestRepo) ListBySeller(ctx context.Context, sellerID uint64) ([]SellerRequestRow, error) {
    const q = `SELECT br.id, br.listing_id, br.status,
                      l.title, l.price,
                      u.name, u.location,
                      DATE_FORMAT(br.created_at, '%Y-%m-%dT%TZ')
               FROM buy_requests br
               JOIN listings l ON l.id = br.listing_id
               JOIN users u ON u.id = br.buyer_id
               WHERE br.seller_id = ?
               ORDER BY br.created_at DESC`
    rows, err := r.db.QueryContext(ctx, q, sellerID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]SellerRequestRow, 0)
    for rows.Next() {
        var d SellerRequestRow
        if err := rows.Scan(&d.ID, &d.ListingID, &d.Status, &d.ListingTitle, &d.ListingPrice, &d.BuyerName, &d.BuyerLocation, &d.CreatedAt); err != nil {
            return nil, err
        }
        out = append(out, d)
    }
    return out, rows.Err()
}
