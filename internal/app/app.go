package app

import (
	"context"
	"net/http"
	"os"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/uezdny/konditer/internal/adapters/httpserver"
	"github.com/uezdny/konditer/internal/adapters/notify/loopback"
	"github.com/uezdny/konditer/internal/adapters/notify/redispub"
	"github.com/uezdny/konditer/internal/adapters/orders/webhook"
	"github.com/uezdny/konditer/internal/adapters/repo/postgres"
	"github.com/uezdny/konditer/internal/adapters/store/localfs"
	"github.com/uezdny/konditer/internal/domain"
	"github.com/uezdny/konditer/internal/usecase"
)

type App struct {
	DB       *gorm.DB
	Cart     *usecase.CartUC
	Catalog  *usecase.CatalogUC
	Products *usecase.ProductUC
	Orders   domain.OrderRepo
	Gateway  domain.OrderGateway
	Notifier domain.CartNotifier
}

// NewApp wires the storefront core. Both db and rdb may be nil: without a
// database the catalog serves its built-in defaults, without Redis the
// change notifier stays in-process.
func NewApp(db *gorm.DB, rdb *redis.Client) (*App, error) {
	storageDir := os.Getenv("STORAGE_DIR")
	if storageDir == "" {
		storageDir = "data"
	}
	if err := os.MkdirAll(storageDir, 0755); err != nil {
		return nil, err
	}
	store := localfs.New(storageDir)

	var notifier domain.CartNotifier
	if rdb != nil {
		notifier = redispub.New(rdb)
	} else {
		notifier = loopback.New()
	}

	a := &App{
		DB:       db,
		Cart:     usecase.NewCartUC(store, notifier),
		Catalog:  &usecase.CatalogUC{},
		Products: &usecase.ProductUC{},
		Gateway:  webhook.NewGateway(os.Getenv("ORDER_ENDPOINT")),
		Notifier: notifier,
	}
	if db != nil {
		a.Catalog.Options = postgres.NewOptionRepo(db)
		a.Products.Products = postgres.NewProductRepo(db)
		a.Orders = postgres.NewOrderRepo(db)
	}
	return a, nil
}

// Start loads the persisted cart and begins observing cross-context
// change events.
func (a *App) Start(ctx context.Context) error {
	return a.Cart.Start(ctx)
}

func (a *App) HTTPHandler() http.Handler {
	newBuilder := func() *usecase.BuilderUC {
		return usecase.NewBuilderUC(a.Catalog, a.Cart, a.Gateway, a.Orders)
	}
	return httpserver.New(a.Cart, a.Catalog, a.Products, a.Orders, newBuilder)
}

func (a *App) MigrateAndSeed(ctx context.Context) error {
	if a.DB == nil {
		return nil
	}
	if err := a.DB.AutoMigrate(
		&domain.Option{}, &domain.Product{}, &domain.CustomOrder{},
	); err != nil {
		return err
	}
	if err := postgres.NewOptionRepo(a.DB).SeedDefaults(ctx); err != nil {
		return err
	}
	return seedProducts(ctx, a.DB)
}

func seedProducts(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.WithContext(ctx).Model(&domain.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	prods := []domain.Product{
		{Name: "Honey cake", Type: "cake", BasePrice: 1800, Category: "classic", Description: "Layered honey sponge with sour cream", IsAvailable: true},
		{Name: "Napoleon", Type: "cake", BasePrice: 1600, Category: "classic", Description: "Puff pastry with custard", IsAvailable: true},
		{Name: "Bento cake", Type: "bento", BasePrice: 900, Category: "mini", Description: "Small cake for one or two", IsAvailable: true},
		{Name: "Cupcake box", Type: "cupcake", BasePrice: 1200, Category: "sets", Description: "Nine assorted cupcakes", IsAvailable: true},
		{Name: "Macaron set", Type: "dessert", BasePrice: 800, Category: "sets", Description: "Twelve macarons", IsAvailable: true},
	}
	for i := range prods {
		if err := db.WithContext(ctx).Create(&prods[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
