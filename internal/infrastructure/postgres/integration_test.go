package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/posbuzz/pos-api/internal/application/dto"
	"github.com/posbuzz/pos-api/internal/application/sales"
	"github.com/posbuzz/pos-api/internal/domain"
	"github.com/posbuzz/pos-api/internal/domain/entity"
	"github.com/posbuzz/pos-api/internal/infrastructure/postgres"
	"github.com/posbuzz/pos-api/pkg/config"
)

// Tests de integración contra PostgreSQL real (testcontainers).
// Se omiten con -short.

func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("test de integración: requiere Docker, omitido con -short")
	}
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "arranque del contenedor postgres")
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminar contenedor: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://testuser:testpass@%s:%s/testdb?sslmode=disable", host, port.Port())

	// NewPool registra además el codec NUMERIC -> decimal.
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn})
	require.NoError(t, err, "crear pool")
	t.Cleanup(pool.Close)

	schema, err := os.ReadFile("../../../migrations/001_init.up.sql")
	require.NoError(t, err, "leer migración")
	_, err = pool.Exec(ctx, string(schema))
	require.NoError(t, err, "aplicar migración")

	return pool
}

func insertUser(t *testing.T, pool *pgxpool.Pool) *entity.User {
	t.Helper()
	now := time.Now()
	u := &entity.User{
		ID:           uuid.New().String(),
		Email:        fmt.Sprintf("cajero-%s@example.com", uuid.New().String()[:8]),
		PasswordHash: "$2a$10$hash-de-prueba",
		Name:         "Cajero",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, postgres.NewUserRepository(pool).Create(u))
	return u
}

func insertProduct(t *testing.T, pool *pgxpool.Pool, sku, price string, stock int) *entity.Product {
	t.Helper()
	now := time.Now()
	p := &entity.Product{
		ID:            uuid.New().String(),
		SKU:           sku,
		Name:          "Producto " + sku,
		Price:         decimal.RequireFromString(price),
		StockQuantity: stock,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, postgres.NewProductRepository(pool).Create(p))
	return p
}

func newSaleUC(pool *pgxpool.Pool) *sales.SaleUseCase {
	return sales.NewSaleUseCase(
		postgres.NewTxRunner(pool),
		postgres.NewSaleRepository(pool),
		postgres.NewUserRepository(pool),
	)
}

// Email duplicado viola el índice único y se mapea a ErrEmailAlreadyExists.
func TestIntegration_UserEmailUnico(t *testing.T) {
	pool := setupTestDB(t)
	repo := postgres.NewUserRepository(pool)

	u := insertUser(t, pool)
	dup := *u
	dup.ID = uuid.New().String()
	err := repo.Create(&dup)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// SKU duplicado viola el índice único y se mapea a ErrDuplicate.
func TestIntegration_ProductSKUUnico(t *testing.T) {
	pool := setupTestDB(t)
	repo := postgres.NewProductRepository(pool)

	insertProduct(t, pool, "SKU-A", "12.50", 10)
	now := time.Now()
	err := repo.Create(&entity.Product{
		ID: uuid.New().String(), SKU: "SKU-A", Name: "otro",
		Price: decimal.RequireFromString("1"), StockQuantity: 1,
		CreatedAt: now, UpdatedAt: now,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// Roundtrip de producto: NUMERIC vuelve como decimal equivalente.
func TestIntegration_ProductRoundTrip(t *testing.T) {
	pool := setupTestDB(t)
	repo := postgres.NewProductRepository(pool)

	p := insertProduct(t, pool, "SKU-A", "12.50", 10)
	got, err := repo.GetByID(p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, p.Price.Equal(got.Price), "precio esperado %s, fue %s", p.Price, got.Price)
	assert.Equal(t, 10, got.StockQuantity)

	bySKU, err := repo.GetBySKU("SKU-A")
	require.NoError(t, err)
	require.NotNil(t, bySKU)
	assert.Equal(t, p.ID, bySKU.ID)
}

// Venta feliz contra la base real: total correcto, stock descontado,
// líneas persistidas con snapshot de precio.
func TestIntegration_VentaBasica(t *testing.T) {
	pool := setupTestDB(t)
	uc := newSaleUC(pool)
	user := insertUser(t, pool)
	pa := insertProduct(t, pool, "SKU-A", "12.50", 10)
	pb := insertProduct(t, pool, "SKU-B", "3.75", 5)

	out, err := uc.CreateSale(context.Background(), user.ID, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: pa.ID, Quantity: 2},
			{ProductID: pb.ID, Quantity: 3},
		},
	})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("36.25").Equal(out.Total))

	productRepo := postgres.NewProductRepository(pool)
	gotA, err := productRepo.GetByID(pa.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, gotA.StockQuantity)
	gotB, err := productRepo.GetByID(pb.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, gotB.StockQuantity)

	// Releer la venta: join a users y products.
	got, err := uc.GetSale(context.Background(), out.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.User.Email)
	require.Len(t, got.Items, 2)
	for _, line := range got.Items {
		require.NotNil(t, line.Product)
	}
}

// Stock insuficiente: rollback completo, ni venta ni descuento parcial.
func TestIntegration_VentaStockInsuficienteRollback(t *testing.T) {
	pool := setupTestDB(t)
	uc := newSaleUC(pool)
	user := insertUser(t, pool)
	pa := insertProduct(t, pool, "SKU-A", "12.50", 10)
	pb := insertProduct(t, pool, "SKU-B", "3.75", 5)

	_, err := uc.CreateSale(context.Background(), user.ID, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: pa.ID, Quantity: 2},  // cabe
			{ProductID: pb.ID, Quantity: 99}, // no cabe
		},
	})
	require.Error(t, err)
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, pb.ID, stockErr.ProductID)
	assert.Equal(t, 5, stockErr.Available)

	productRepo := postgres.NewProductRepository(pool)
	gotA, err := productRepo.GetByID(pa.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, gotA.StockQuantity, "rollback: el stock de A no debe cambiar")

	var count int
	err = pool.QueryRow(context.Background(), "SELECT count(*) FROM sales").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 0, count, "rollback: no debe quedar venta persistida")
}

// Producto inexistente en la venta: ErrNotFound y rollback.
func TestIntegration_VentaProductoInexistente(t *testing.T) {
	pool := setupTestDB(t)
	uc := newSaleUC(pool)
	user := insertUser(t, pool)
	pa := insertProduct(t, pool, "SKU-A", "12.50", 10)

	_, err := uc.CreateSale(context.Background(), user.ID, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: pa.ID, Quantity: 1},
			{ProductID: uuid.New().String(), Quantity: 1},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := postgres.NewProductRepository(pool).GetByID(pa.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.StockQuantity)
}

// Ventas concurrentes sobre el mismo producto: FOR UPDATE serializa la
// verificación de stock y no se puede sobrevender.
func TestIntegration_VentasConcurrentes(t *testing.T) {
	pool := setupTestDB(t)
	uc := newSaleUC(pool)
	user := insertUser(t, pool)
	p := insertProduct(t, pool, "SKU-A", "12.50", 10)

	const workers = 8
	const qty = 3

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.CreateSale(context.Background(), user.ID, dto.CreateSaleRequest{
				Items: []dto.SaleItemRequest{{ProductID: p.ID, Quantity: qty}},
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	okCount := 0
	for err := range errs {
		switch {
		case err == nil:
			okCount++
		case errors.Is(err, domain.ErrInsufficientStock):
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 3, okCount, "con stock 10 y ventas de 3, solo caben 3")

	got, err := postgres.NewProductRepository(pool).GetByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.StockQuantity)
}

// Las líneas releídas conservan el orden del request (line_no), no el orden
// aleatorio de los UUID.
func TestIntegration_LineasConservanOrdenDelRequest(t *testing.T) {
	pool := setupTestDB(t)
	uc := newSaleUC(pool)
	user := insertUser(t, pool)
	pa := insertProduct(t, pool, "SKU-A", "12.50", 10)
	pb := insertProduct(t, pool, "SKU-B", "3.75", 10)
	pc := insertProduct(t, pool, "SKU-C", "1.00", 10)

	// B primero, luego C, luego A.
	out, err := uc.CreateSale(context.Background(), user.ID, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: pb.ID, Quantity: 1},
			{ProductID: pc.ID, Quantity: 1},
			{ProductID: pa.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	got, err := uc.GetSale(context.Background(), out.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 3)
	assert.Equal(t, pb.ID, got.Items[0].ProductID)
	assert.Equal(t, pc.ID, got.Items[1].ProductID)
	assert.Equal(t, pa.ID, got.Items[2].ProductID)
}

// El listado de ventas sale de la más reciente a la más antigua.
func TestIntegration_ListadoRecienteAAntiguo(t *testing.T) {
	pool := setupTestDB(t)
	uc := newSaleUC(pool)
	user := insertUser(t, pool)
	p := insertProduct(t, pool, "SKU-A", "12.50", 100)

	var ids []string
	for i := 0; i < 3; i++ {
		out, err := uc.CreateSale(context.Background(), user.ID, dto.CreateSaleRequest{
			Items: []dto.SaleItemRequest{{ProductID: p.ID, Quantity: 1}},
		})
		require.NoError(t, err)
		ids = append(ids, out.ID)
		time.Sleep(10 * time.Millisecond) // separar created_at
	}

	list, err := uc.ListSales(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, list.Items, 3)
	assert.Equal(t, ids[2], list.Items[0].ID, "la última venta debe salir primero")
	assert.Equal(t, ids[0], list.Items[2].ID)
}
