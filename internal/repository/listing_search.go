package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/iliyamo/gadget-market/internal/market"
)

// ListingSearchQuery defines filters and sorting for browsing
// listings.  Zero values mean "no filter".  MinPrice/MaxPrice apply
// to the public price, not the seller payout.
type ListingSearchQuery struct {
    Query     string
    Category  string
    Condition string
    MinPrice  float64
    MaxPrice  float64
    Sort      string
    Limit     int
}

// ListingRow is the browse projection returned to guests and buyers.
// Both active and sold rows are returned; callers gray out sold items
// rather than hiding them.
type ListingRow struct {
    ID           uint64   `json:"id"`
    SellerID     uint64   `json:"seller_id"`
    Title        string   `json:"title"`
    Category     string   `json:"category"`
    Brand        string   `json:"brand"`
    Model        string   `json:"model"`
    Condition    string   `json:"condition"`
    Description  string   `json:"description"`
    WorkingParts string   `json:"working_parts,omitempty"`
    Location     string   `json:"location"`
    Price        float64  `json:"price"`
    Photos       []string `json:"photos"`
    Status       string   `json:"status"`
    CreatedAt    string   `json:"created_at"`
}

// Search returns listings matching the query.  Removed listings are
// hard-deleted, so the visible universe is active and sold rows.  The
// free-text term matches title, brand, model and description; sorting
// is newest (default), price_low or price_high.
func (r *ListingRepo) Search(ctx context.Context, q ListingSearchQuery) ([]ListingRow, error) {
    where := []string{"status IN (?, ?)"}
    args := []any{"active", "sold"}

    if term := strings.TrimSpace(q.Query); term != "" {
        like := "%" + term + "%"
        where = append(where, "(title LIKE ? OR brand LIKE ? OR model LIKE ? OR description LIKE ?)")
        args = append(args, like, like, like, like)
    }
    if q.Category != "" {
        where = append(where, "category LIKE ?")
        args = append(args, "%"+q.Category+"%")
    }
    if q.Condition != "" {
        where = append(where, "cond = ?")
        args = append(args, q.Condition)
    }
    if q.MinPrice > 0 {
        where = append(where, "price >= ?")
        args = append(args, q.MinPrice)
    }
    if q.MaxPrice > 0 {
        where = append(where, "price <= ?")
        args = append(args, q.MaxPrice)
    }

    order := "created_at DESC"
    switch market.NormalizeSort(q.Sort) {
    case market.SortPriceLow:
        order = "price ASC"
    case market.SortPriceHigh:
        order = "price DESC"
    }

    query := `SELECT id, seller_id, title, category, brand, model, cond, description, working_parts, location, price, photos, status, DATE_FORMAT(created_at, '%Y-%m-%dT%TZ')
              FROM listings
              WHERE ` + strings.Join(where, " AND ") + `
              ORDER BY ` + order
    if q.Limit > 0 {
        query += " LIMIT ?"
        args = append(args, q.Limit)
    }

    rows, err := r.db.QueryContext(ctx, query, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    out := make([]ListingRow, 0)
    for rows.Next() {
        var d ListingRow
        var photos sql.NullString
        if err := rows.Scan(
            &d.ID, &d.SellerID, &d.Title, &d.Category, &d.Brand, &d.Model,
            &d.Condition, &d.Description, &d.WorkingParts, &d.Location,
            &d.Price, &photos, &d.Status, &d.CreatedAt,
        ); err != nil {
            return nil, err
        }
        d.Photos = decodePhotos(photos)
        out = append(out, d)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}
