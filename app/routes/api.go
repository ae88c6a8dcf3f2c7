package routes

import (
	"net/http"

	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/app/controllers"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/app/models"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/app/repositories"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/app/services"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/metrics"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/middleware"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/orm"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/rbac"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/response"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/router"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/pkg/storage"
)

// RegisterAPI wires every portal route. Catalogue reads are public;
// everything else requires a valid token, with pharmacist/admin gates on
// review and fulfilment routes.
func RegisterAPI(r *router.Router) {
	users := repositories.NewUserRepository()
	addresses := repositories.NewAddressRepository()
	medicines := repositories.NewMedicineRepository()
	prescriptions := repositories.NewPrescriptionRepository()
	orders := repositories.NewOrderRepository()

	notifier := services.NewEmailNotifier()
	prescriptionService := services.NewPrescriptionService(
		prescriptions, users, orders, storage.Default(), notifier)
	orderService := services.NewOrderService(
		users, addresses, medicines, prescriptions, orders,
		prescriptionService, orm.WithTransaction)

	authController := controllers.NewAuthController()
	medicineController := controllers.NewMedicineController()
	orderController := controllers.NewOrderController(orderService)
	prescriptionController := controllers.NewPrescriptionController(prescriptionService)

	r.Get("/health", "health", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})
	r.Get("/metrics", "metrics", metrics.Handler())

	api := r.Group("/api")

	// Public surface.
	api.Post("/register", "auth.register", authController.Register)
	api.Post("/login", "auth.login", authController.Login)
	api.Get("/medicines", "medicines.index", medicineController.Index)
	api.Get("/medicines/{id}", "medicines.show", medicineController.Show)
	api.Get("/categories", "categories.index", medicineController.Categories)

	// Any authenticated user.
	protected := api.Group("", middleware.AuthMiddleware)
	protected.Post("/orders", "orders.store", orderController.Store)
	protected.Get("/orders/{id}", "orders.show", orderController.Show)
	protected.Get("/orders/{id}/can-update-status", "orders.probe", orderController.CanUpdateStatus)
	protected.Delete("/orders/{id}", "orders.destroy", orderController.Destroy)
	protected.Post("/prescriptions", "prescriptions.upload", prescriptionController.Upload)
	protected.Get("/prescriptions/{id}", "prescriptions.show", prescriptionController.Show)
	protected.Get("/prescriptions/{id}/download", "prescriptions.download", prescriptionController.Download)

	// Pharmacists and admins.
	staff := protected.Group("", rbac.HasRole(string(models.RoleAdmin), string(models.RolePharmacist)))
	staff.Put("/orders/{id}/status", "orders.updateStatus", orderController.UpdateStatus)
	staff.Put("/prescriptions/{id}/verify", "prescriptions.verify", prescriptionController.Verify)
	staff.Put("/prescriptions/{id}/review", "prescriptions.review", prescriptionController.Review)

	// Admin-only catalogue management.
	admin := protected.Group("", rbac.HasRole(string(models.RoleAdmin)))
	admin.Post("/medicines", "medicines.store", medicineController.Store)
	admin.Put("/medicines/{id}", "medicines.update", medicineController.Update)
	admin.Delete("/medicines/{id}", "medicines.destroy", medicineController.Destroy)
	admin.Post("/categories", "categories.store", medicineController.StoreCategory)
}
