package group

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/kuma-mall/admin-backend/internal/database"
	"github.com/lib/pq"
)

// postgresRepo talks to either the pool or a transaction. db is nil once bound to a tx.
type postgresRepo struct {
	db *sql.DB
	q  database.Querier
}

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db, q: db} }

func (r *postgresRepo) InTx(ctx context.Context, fn func(Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		return fn(&postgresRepo{q: tx})
	})
}

const groupColumns = `id, uuid, name, description, main_image_urls, member_skus, created_at`

const itemColumns = `id, group_uuid, sku, name, quantity, category, collection, cost_price,
	sale_price, width, length, height, weight, image_url, created_at`

func scanGroup(scan func(...interface{}) error) (*Group, error) {
	g := &Group{}
	var images, skus pq.StringArray
	if err := scan(&g.ID, &g.UUID, &g.Name, &g.Description, &images, &skus, &g.CreatedAt); err != nil {
		return nil, err
	}
	g.MainImageURLs = nonNil(images)
	g.MemberSKUs = nonNil(skus)
	return g, nil
}

func scanItem(scan func(...interface{}) error) (*Item, error) {
	it := &Item{}
	err := scan(&it.ID, &it.GroupUUID, &it.SKU, &it.Name, &it.Quantity, &it.Category, &it.Collection,
		&it.CostPrice, &it.SalePrice, &it.Width, &it.Length, &it.Height, &it.Weight,
		&it.ImageURL, &it.CreatedAt)
	if err != nil {
		return nil, err
	}
	return it, nil
}

// ── groups ───────────────────────────────────────────────────────────────────

func (r *postgresRepo) CreateGroup(ctx context.Context, g *Group) error {
	err := r.q.QueryRowContext(ctx, `
		INSERT INTO product_groups (uuid, name, description, main_image_urls, member_skus)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		g.UUID, g.Name, g.Description,
		pq.StringArray(nonNil(g.MainImageURLs)), pq.StringArray(nonNil(g.MemberSKUs)),
	).Scan(&g.ID, &g.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert group: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetGroup(ctx context.Context, id uuid.UUID) (*Group, error) {
	g, err := scanGroup(r.q.QueryRowContext(ctx,
		`SELECT `+groupColumns+` FROM product_groups WHERE uuid = $1`, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGroupNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get group %s: %w", id, err)
	}
	return g, nil
}

func (r *postgresRepo) ListGroups(ctx context.Context) ([]*Group, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+groupColumns+` FROM product_groups ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()

	groups := []*Group{}
	for rows.Next() {
		g, err := scanGroup(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (r *postgresRepo) UpdateGroup(ctx context.Context, g *Group) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE product_groups
		SET name = $1, description = $2, main_image_urls = $3, member_skus = $4
		WHERE uuid = $5`,
		g.Name, g.Description,
		pq.StringArray(nonNil(g.MainImageURLs)), pq.StringArray(nonNil(g.MemberSKUs)), g.UUID)
	if err != nil {
		return fmt.Errorf("update group %s: %w", g.UUID, err)
	}
	return expectRow(res, ErrGroupNotFound)
}

func (r *postgresRepo) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM product_groups WHERE uuid = $1`, id)
	if err != nil {
		return fmt.Errorf("delete group %s: %w", id, err)
	}
	return expectRow(res, ErrGroupNotFound)
}

// ── items ────────────────────────────────────────────────────────────────────

func (r *postgresRepo) ListItems(ctx context.Context, groupID uuid.UUID) ([]*Item, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM group_items WHERE group_uuid = $1 ORDER BY id ASC`, groupID)
	if err != nil {
		return nil, fmt.Errorf("list items of %s: %w", groupID, err)
	}
	defer rows.Close()

	items := []*Item{}
	for rows.Next() {
		it, err := scanItem(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *postgresRepo) FindItem(ctx context.Context, groupID uuid.UUID, sku string) (*Item, error) {
	it, err := scanItem(r.q.QueryRowContext(ctx, `
		SELECT `+itemColumns+` FROM group_items
		WHERE group_uuid = $1 AND sku = $2
		ORDER BY id ASC
		LIMIT 1`, groupID, sku).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find item %s in %s: %w", sku, groupID, err)
	}
	return it, nil
}

func (r *postgresRepo) CreateItem(ctx context.Context, it *Item) error {
	err := r.q.QueryRowContext(ctx, `
		INSERT INTO group_items
		  (group_uuid, sku, name, quantity, category, collection, cost_price,
		   sale_price, width, length, height, weight, image_url)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		RETURNING id, created_at`,
		it.GroupUUID, it.SKU, it.Name, it.Quantity, it.Category, it.Collection, it.CostPrice,
		it.SalePrice, it.Width, it.Length, it.Height, it.Weight, it.ImageURL,
	).Scan(&it.ID, &it.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert item %s: %w", it.SKU, err)
	}
	return nil
}

func (r *postgresRepo) UpdateItem(ctx context.Context, it *Item) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE group_items
		SET name = $1, quantity = $2, category = $3, collection = $4, cost_price = $5,
		    sale_price = $6, width = $7, length = $8, height = $9, weight = $10, image_url = $11
		WHERE id = $12 AND sku = $13`,
		it.Name, it.Quantity, it.Category, it.Collection, it.CostPrice,
		it.SalePrice, it.Width, it.Length, it.Height, it.Weight, it.ImageURL,
		it.ID, it.SKU)
	if err != nil {
		return fmt.Errorf("update item %d/%s: %w", it.ID, it.SKU, err)
	}
	return expectRow(res, ErrItemNotFound)
}

func (r *postgresRepo) DeleteItems(ctx context.Context, groupID uuid.UUID) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM group_items WHERE group_uuid = $1`, groupID); err != nil {
		return fmt.Errorf("delete items of %s: %w", groupID, err)
	}
	return nil
}

func (r *postgresRepo) DeleteItem(ctx context.Context, id int64, sku string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM group_items WHERE id = $1 AND sku = $2`, id, sku)
	if err != nil {
		return fmt.Errorf("delete item %d/%s: %w", id, sku, err)
	}
	return expectRow(res, ErrItemNotFound)
}

// ── helpers ──────────────────────────────────────────────────────────────────

func expectRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
