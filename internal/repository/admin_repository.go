package repository

import (
    "context"
    "database/sql"
)

// AdminRepo groups the read/aggregate and forced-removal operations
// that cut across users, listings, requests and orders.  Cascading
// deletes are a manual fan-out (the schema declares no ON DELETE
// CASCADE) executed inside one transaction so a reader never observes
// a half-removed user or listing.
type AdminRepo struct {
    db *sql.DB
}

// NewAdminRepo returns a new AdminRepo bound to the given database.
func NewAdminRepo(db *sql.DB) *AdminRepo { return &AdminRepo{db: db} }

// AdminUserRow is the user projection for the admin panel; the
// password hash is never exposed.
type AdminUserRow struct {
    ID       uint64 `json:"id"`
    Name     string `json:"name"`
    Email    string `json:"email"`
    Role     string `json:"role"`
    Location string `json:"location"`
    Phone    string `json:"phone"`
}

// ListUsers returns every registered user.
func (r *AdminRepo) ListUsers(ctx context.Context) ([]AdminUserRow, error) {
    const q = `SELECT id, name, email, role, location, phone FROM users ORDER BY id`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]AdminUserRow, 0)
    for rows.Next() {
        var d AdminUserRow
        if err := rows.Scan(&d.ID, &d.Name, &d.Email, &d.Role, &d.Location, &d.Phone); err != nil {
            return nil, err
        }
        out = append(out, d)
    }
    return out, rows.Err()
}

// AdminListingRow is the listing projection for the admin panel,
// including the seller payout and the platform profit stored at
// creation time.  Profit is read back, never recomputed: listings
// keep the pricing snapshot taken when they were posted.
type AdminListingRow struct {
    ID          uint64  `json:"id"`
    SellerID    uint64  `json:"seller_id"`
    Title       string  `json:"title"`
    Category    string  `json:"category"`
    Condition   string  `json:"condition"`
    SellerPrice float64 `json:"seller_price"`
    Price       float64 `json:"price"`
    Profit      float64 `json:"profit"`
    Status      string  `json:"status"`
    CreatedAt   string  `json:"created_at"`
}

// ListListingsWithProfit returns every listing with its commission
// margin, newest first.
func (r *AdminRepo) ListListingsWithProfit(ctx context.Context) ([]AdminListingRow, error) {
    const q = `SELECT id, seller_id, title, category, cond, seller_price, price, price - seller_price,
                      status, DATE_FORMAT(created_at, '%Y-%m-%dT%TZ')
               FROM listings
               ORDER BY created_at DESC`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]AdminListingRow, 0)
    for rows.Next() {
        var d AdminListingRow
        if err := rows.Scan(&d.ID, &d.SellerID, &d.Title, &d.Category, &d.Condition,
            &d.SellerPrice, &d.Price, &d.Profit, &d.Status, &d.CreatedAt); err != nil {
            return nil, err
        }
        out = append(out, d)
    }
    return out, rows.Err()
}

// SoldItemRow joins a completed trade with both parties' contact
// details for the admin sold-history view.
type SoldItemRow struct {
    OrderID     uint64  `json:"order_id"`
    ListingID   uint64  `json:"listing_id"`
    Title       string  `json:"title"`
    Category    string  `json:"category"`
    SellerPrice float64 `json:"seller_price"`
    Price       float64 `json:"price"`
    Profit      float64 `json:"profit"`
    BuyerName   string  `json:"buyer_name"`
    BuyerEmail  string  `json:"buyer_email"`
    BuyerPhone  string  `json:"buyer_phone"`
    SellerName  string  `json:"seller_name"`
    SellerEmail string  `json:"seller_email"`
    SellerPhone string  `json:"seller_phone"`
    SoldAt      string  `json:"sold_at"`
}

// ListSoldItems returns the completed trades, newest first.  Only
// finalized orders count as sold; accepted-but-unpaid requests do
// not appear here.
func (r *AdminRepo) ListSoldItems(ctx context.Context) ([]SoldItemRow, error) {
    const q = `SELECT o.id, l.id, l.title, l.category, l.seller_price, l.price, l.price - l.seller_price,
                      b.name, b.email, b.phone,
                      s.name, s.email, s.phone,
                      DATE_FORMAT(o.created_at, '%Y-%m-%dT%TZ')
               FROM orders o
               JOIN listings l ON l.id = o.listing_id
               JOIN users b ON b.id = o.buyer_id
               JOIN users s ON s.id = o.seller_id
               ORDER BY o.created_at DESC`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]SoldItemRow, 0)
    for rows.Next() {
        var d SoldItemRow
        if err := rows.Scan(&d.OrderID, &d.ListingID, &d.Title, &d.Category,
            &d.SellerPrice, &d.Price, &d.Profit,
            &d.BuyerName, &d.BuyerEmail, &d.BuyerPhone,
            &d.SellerName, &d.SellerEmail, &d.SellerPhone, &d.SoldAt); err != nil {
            return nil, err
        }
        out = append(out, d)
    }
    return out, rows.Err()
}

// DeleteUserCascade removes a user and everything hanging off them:
// orders they appear in on either side, requests they filed or
// received, listings they own, and their refresh tokens.  The fan-out
// runs in one transaction.  sql.ErrNoRows is returned when the user
// does not exist.
func (r *AdminRepo) DeleteUserCascade(ctx context.Context, userID uint64) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    var exists int
    if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE id = ?`, userID).Scan(&exists); err != nil {
        return err
    }
    if exists == 0 {
        return sql.ErrNoRows
    }

    steps := []string{
        `DELETE FROM orders WHERE buyer_id = ? OR seller_id = ?`,
        `DELETE FROM buy_requests WHERE buyer_id = ? OR seller_id = ?`,
    }
    for _, q := range steps {
        if _, err := tx.ExecContext(ctx, q, userID, userID); err != nil {
            return err
        }
    }
    if _, err := tx.ExecContext(ctx, `DELETE FROM listings WHERE seller_id = ?`, userID); err != nil {
        return err
    }
    if _, err := tx.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE user_id = ?`, userID); err != nil {
        return err
    }
    if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID); err != nil {
        return err
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

// DeleteListingCascade removes a listing together with all requests
// and orders referencing it, in one transaction.  sql.ErrNoRows is
// returned when the listing does not exist.
func (r *AdminRepo) DeleteListingCascade(ctx context.Context, listingID uint64) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    var exists int
    if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM listings WHERE id = ?`, listingID).Scan(&exists); err != nil {
        return err
    }
    if exists == 0 {
        return sql.ErrNoRows
    }

    for _, q := range []string{
        `DELETE FROM orders WHERE listing_id = ?`,
        `DELETE FROM buy_requests WHERE listing_id = ?`,
        `DELETE FROM listings WHERE id = ?`,
    } {
        if _, err := tx.ExecContext(ctx, q, listingID); err != nil {
            return err
        }
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}
