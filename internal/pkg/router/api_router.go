package router

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/urbanserve/backoffice/app/controllers"
	"github.com/urbanserve/backoffice/app/repository"
	"github.com/urbanserve/backoffice/internal/pkg/catalog"
	"github.com/urbanserve/backoffice/internal/pkg/constants"
	"github.com/urbanserve/backoffice/internal/pkg/geo"
	"github.com/urbanserve/backoffice/internal/pkg/lifecycle"
	"github.com/urbanserve/backoffice/internal/pkg/middleware"
	"github.com/urbanserve/backoffice/internal/pkg/provisioning"
	"github.com/urbanserve/backoffice/internal/pkg/wallet"
)

type ApiRouter struct {
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	repos := repository.GetGlobalRepositories()

	// reference data is loaded once here; both components offer an explicit
	// reload endpoint instead of re-reading per request
	resolver := geo.NewResolver(repos.Pincode)
	if err := resolver.Load(); err != nil {
		log.Fatalf("Failed to load pincode reference data: %v", err)
	}
	planCatalog := catalog.NewCatalog(repos.Plan)
	planCatalog.EnableCache()
	if err := planCatalog.Load(); err != nil {
		log.Fatalf("Failed to load subscription catalog: %v", err)
	}

	lifecycleSvc := lifecycle.NewService(repos.Listing)
	provisioningSvc := provisioning.NewService(repos.Partner, resolver, planCatalog)
	ledger := wallet.NewLedger(repos.Partner)

	listingCtrl := controllers.NewListingController(lifecycleSvc)
	partnerCtrl := controllers.NewPartnerController(provisioningSvc, repos.Partner)
	walletCtrl := controllers.NewWalletController(ledger)
	geoCtrl := controllers.NewGeoController(resolver)
	planCtrl := controllers.NewPlanController(planCatalog)
	adminCtrl := controllers.NewAdminController(repos)

	api := app.Group(constants.APIPrefix, limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "UrbanServe back office API",
		})
	})

	v1 := api.Group(constants.APIV1Prefix, middleware.OperatorContextMiddleware)

	// listings
	listings := v1.Group(constants.ListingsRoute)
	listings.Get("/", listingCtrl.HandleList)
	listings.Get("/:uuid", listingCtrl.HandleGet)
	listings.Post("/", middleware.RequireOperator, listingCtrl.HandleCreate)
	listings.Post("/:uuid/approve", middleware.RequireOperator, listingCtrl.HandleApprove)
	listings.Post("/:uuid/reject", middleware.RequireOperator, listingCtrl.HandleReject)
	listings.Post("/:uuid/activate", middleware.RequireOperator, listingCtrl.HandleActivate)
	listings.Post("/:uuid/deactivate", middleware.RequireOperator, listingCtrl.HandleDeactivate)
	listings.Delete("/:uuid", middleware.RequireOperator, listingCtrl.HandleSoftDelete)

	// partners and wallets
	partners := v1.Group(constants.PartnersRoute)
	partners.Get("/", partnerCtrl.HandleList)
	partners.Get("/:uuid", partnerCtrl.HandleGet)
	partners.Post("/", middleware.RequireOperator, partnerCtrl.HandleProvision)
	partners.Patch("/:uuid/status", middleware.RequireOperator, partnerCtrl.HandleSetStatus)
	partners.Get("/:uuid/wallet", walletCtrl.HandleGetBalance)
	partners.Post("/:uuid/wallet/consume", middleware.RequireOperator, walletCtrl.HandleConsume)

	// reference data
	pincodes := v1.Group(constants.PincodesRoute)
	pincodes.Get("/:code", geoCtrl.HandleResolve)
	pincodes.Post("/reload", middleware.RequireOperator, geoCtrl.HandleReload)

	plans := v1.Group(constants.PlansRoute)
	plans.Get("/", planCtrl.HandleListActive)
	plans.Post("/reload", middleware.RequireOperator, planCtrl.HandleReload)

	v1.Get(constants.CategoriesRoute, adminCtrl.HandleListCategories)
	v1.Get(constants.DashboardRoute, adminCtrl.HandleDashboard)
}
