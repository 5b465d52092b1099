package schema

// Relational schema objects, named once so every lifecycle operation walks
// them in a dependency-aware order.

// tablesChildFirst lists current tables children before parents, the safe
// order for row deletion.
var tablesChildFirst = []string{
	"order_items",
	"orders",
	"products",
	"categories",
	"users",
}

// legacyTables are leftovers from earlier deployments; hard reset drops them
// so a recreate starts from a clean slate. They are never recreated.
var legacyTables = []string{
	"app_users",
	"app_products",
	"discounts",
	"discount_categories",
	"migrations",
}

var enumTypes = []string{
	"user_role",
	"order_status",
	"payment_status",
}

// createEnums must run before any table DDL. duplicate_object makes each
// statement idempotent.
var createEnums = []string{
	`DO $$ BEGIN
		CREATE TYPE user_role AS ENUM ('admin', 'customer');
	EXCEPTION WHEN duplicate_object THEN NULL;
	END $$`,
	`DO $$ BEGIN
		CREATE TYPE order_status AS ENUM ('pending', 'confirmed', 'processing', 'shipped', 'delivered', 'cancelled', 'refunded');
	EXCEPTION WHEN duplicate_object THEN NULL;
	END $$`,
	`DO $$ BEGIN
		CREATE TYPE payment_status AS ENUM ('pending', 'processing', 'completed', 'failed', 'refunded');
	EXCEPTION WHEN duplicate_object THEN NULL;
	END $$`,
}

// createTables is ordered parents before children so foreign keys resolve.
var createTables = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(100) NOT NULL,
		first_name VARCHAR(64),
		last_name VARCHAR(64),
		role user_role NOT NULL DEFAULT 'customer',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(128) NOT NULL UNIQUE,
		description TEXT,
		sort_order INTEGER NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		metadata JSONB,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		description TEXT,
		price NUMERIC(10,2) NOT NULL CHECK (price >= 0),
		stock INTEGER NOT NULL DEFAULT 0,
		images JSONB NOT NULL DEFAULT '[]',
		category_id BIGINT REFERENCES categories(id) ON DELETE SET NULL,
		is_available BOOLEAN NOT NULL DEFAULT TRUE,
		metadata JSONB,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		order_number VARCHAR(64) NOT NULL UNIQUE,
		status order_status NOT NULL DEFAULT 'pending',
		payment_status payment_status NOT NULL DEFAULT 'pending',
		subtotal NUMERIC(10,2) NOT NULL,
		tax_amount NUMERIC(10,2) NOT NULL DEFAULT 0,
		shipping_amount NUMERIC(10,2) NOT NULL DEFAULT 0,
		discount_amount NUMERIC(10,2) NOT NULL DEFAULT 0,
		total_amount NUMERIC(10,2) NOT NULL,
		shipping_address JSONB,
		billing_address JSONB,
		payment_metadata JSONB,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id BIGSERIAL PRIMARY KEY,
		order_id BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		product_id BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		unit_price NUMERIC(10,2) NOT NULL,
		total_price NUMERIC(10,2) NOT NULL,
		product_snapshot JSONB,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}
