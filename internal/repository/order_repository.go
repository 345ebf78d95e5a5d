package repository

import (
    "context"
    "database/sql"

    "github.com/iliyamo/gadget-market/internal/model"
)

// OrderRepo provides access to orders.  Orders are write-once: the
// only insert happens during checkout finalization and there is no
// update path.  A unique index on request_id backstops the
// one-order-per-request invariant at the storage layer.
type OrderRepo struct {
    db *sql.DB
}

// NewOrderRepo returns a new OrderRepo bound to the given database.
func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

// ExistsForRequestTx reports whether an order already references the
// request.  Runs inside the caller's transaction so the check and the
// insert see the same snapshot.
func (r *OrderRepo) ExistsForRequestTx(ctx context.Context, tx *sql.Tx, requestID uint64) (bool, error) {
    const q = `SELECT COUNT(*) FROM orders WHERE request_id = ?`
    var n int
    if err := tx.QueryRowContext(ctx, q, requestID).Scan(&n); err != nil {
        return false, err
    }
    return n > 0, nil
}

// CreateTx inserts the order within the scope of an existing
// transaction and populates the generated ID and creation timestamp
// on the provided record.  The caller must commit or rollback.
func (r *OrderRepo) CreateTx(ctx context.Context, tx *sql.Tx, o *model.Order) error {
    const q = `INSERT INTO orders
               (request_id, listing_id, buyer_id, seller_id, shipping_name, shipping_email, shipping_phone, shipping_address, shipping_pincode, payment_method)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
    res, err := tx.ExecContext(ctx, q,
        o.RequestID, o.ListingID, o.BuyerID, o.SellerID,
        o.ShippingName, o.ShippingEmail, o.ShippingPhone,
        o.ShippingAddress, o.ShippingPincode, o.PaymentMethod)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    o.ID = uint64(id)
    const sel = `SELECT created_at FROM orders WHERE id = ?`
    return tx.QueryRowContext(ctx, sel, o.ID).Scan(&o.CreatedAt)
}

// OrderRow is the projection returned to buyers and sellers for
// their own completed trades.
type OrderRow struct {
    ID              uint64  `json:"id"`
    RequestID       uint64  `json:"request_id"`
    ListingID       uint64  `json:"listing_id"`
    ListingTitle    string  `json:"listing_title"`
    Price           float64 `json:"price"`
    ShippingName    string  `json:"shipping_name"`
    ShippingAddress string  `json:"shipping_address"`
    ShippingPincode string  `json:"shipping_pincode"`
    PaymentMethod   string  `json:"payment_method"`
    CreatedAt       string  `json:"created_at"`
}

// ListByBuyer returns the buyer's orders, newest first.
func (r *OrderRepo) ListByBuyer(ctx context.Context, buyerID uint64) ([]OrderRow, error) {
    return r.listByColumn(ctx, "buyer_id", buyerID)
}

// ListBySeller returns the orders against the seller's listings,
// newest first.
func (r *OrderRepo) ListBySeller(ctx context.Context, sellerID uint64) ([]OrderRow, error) {
    return r.listByColumn(ctx, "seller_id", sellerID)
}

func (r *OrderRepo) listByColumn(ctx context.Context, col string, id uint64) ([]OrderRow, error) {
    q := `SELECT o.id, o.request_id, o.listing_id, l.title, l.price,
                 o.shipping_name, o.shipping_address, o.shipping_pincode, o.payment_method,
                 DATE_FORMAT(o.created_at, '%Y-%m-%dT%TZ')
          FROM orders o
          JOIN listings l ON l.id = o.listing_id
          WHERE o.` + col + ` = ?
          ORDER BY o.created_at DESC`
    rows, err := r.db.QueryContext(ctx, q, id)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]OrderRow, 0)
    for rows.Next() {
        var d OrderRow
        if err := rows.Scan(&d.ID, &d.RequestID, &d.ListingID, &d.ListingTitle, &d.Price,
            &d.ShippingName, &d.ShippingAddress, &d.ShippingPincode, &d.PaymentMethod, &d.CreatedAt); err != nil {
            return nil, err
        }
        out = append(out, d)
    }
    return out, rows.Err()
}
