package router

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fieldserve/fieldserve-app/controllers"
	"github.com/fieldserve/fieldserve-app/middlewares"
	"github.com/fieldserve/fieldserve-app/utils"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	utils.InitDB(db)

	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	customerCtrl := controllers.NewCustomerController(db)
	productCtrl := controllers.NewProductController(db)
	rateCardCtrl := controllers.NewRateCardController(db)
	engineerCtrl := controllers.NewEngineerController(db)
	gangCtrl := controllers.NewGangController(db)
	projectCtrl := controllers.NewProjectController(db)
	workLogCtrl := controllers.NewWorkLogController(db)
	entryCtrl := controllers.NewEntryController(db)

	// Liveness check against the shared database handle.
	r.GET("/ping", func(c *gin.Context) {
		sqlDB, err := utils.GetDB().DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			utils.RespondError(c, http.StatusServiceUnavailable, errors.New("database unreachable"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	customers := r.Group("/customers")
	{
		customers.GET("", customerCtrl.GetAllCustomers)
		customers.POST("", customerCtrl.CreateCustomer)
		customers.GET("/:customer_id", customerCtrl.GetCustomerByID)
		customers.PATCH("/:customer_id", customerCtrl.UpdateCustomer)
		customers.DELETE("/:customer_id", customerCtrl.DeleteCustomer)
	}

	products := r.Group("/products")
	{
		products.GET("", productCtrl.GetAllProducts)
		products.POST("", productCtrl.CreateProduct)
		products.GET("/:product_id", productCtrl.GetProductByID)
		products.PATCH("/:product_id", productCtrl.UpdateProduct)
		products.DELETE("/:product_id", productCtrl.DeleteProduct)
	}

	rateCards := r.Group("/rate-cards")
	{
		rateCards.GET("", rateCardCtrl.GetAllRateCards)
		rateCards.POST("", rateCardCtrl.CreateRateCard)
		rateCards.GET("/:rate_card_id", rateCardCtrl.GetRateCardByID)
		rateCards.PATCH("/:rate_card_id", rateCardCtrl.UpdateRateCard)
		rateCards.DELETE("/:rate_card_id", rateCardCtrl.DeleteRateCard)
		rateCards.GET("/:rate_card_id/products", rateCardCtrl.GetRateCardProducts)
		rateCards.POST("/:rate_card_id/products", rateCardCtrl.AddRateCardProduct)
		rateCards.PATCH("/:rate_card_id/products/:rate_card_product_id", rateCardCtrl.UpdateRateCardProduct)
		rateCards.DELETE("/:rate_card_id/products/:rate_card_product_id", rateCardCtrl.DeleteRateCardProduct)
	}

	engineers := r.Group("/engineers")
	{
		engineers.GET("", engineerCtrl.GetAllEngineers)
		engineers.POST("", engineerCtrl.CreateEngineer)
		engineers.GET("/:engineer_id", engineerCtrl.GetEngineerByID)
		engineers.PATCH("/:engineer_id", engineerCtrl.UpdateEngineer)
		engineers.DELETE("/:engineer_id", engineerCtrl.DeleteEngineer)
	}

	gangs := r.Group("/gangs")
	{
		gangs.GET("", gangCtrl.GetAllGangs)
		gangs.POST("", gangCtrl.CreateGang)
		gangs.GET("/:gang_id", gangCtrl.GetGangByID)
		gangs.PATCH("/:gang_id", gangCtrl.UpdateGang)
		gangs.DELETE("/:gang_id", gangCtrl.DeleteGang)
		gangs.GET("/:gang_id/engineers", gangCtrl.GetGangEngineers)
		gangs.POST("/:gang_id/engineers", gangCtrl.AddGangEngineer)
		gangs.PATCH("/:gang_id/engineers/:gang_engineer_id", gangCtrl.UpdateGangEngineer)
		gangs.DELETE("/:gang_id/engineers/:gang_engineer_id", gangCtrl.RemoveGangEngineer)
	}

	projects := r.Group("/projects")
	{
		projects.GET("", projectCtrl.GetAllProjects)
		projects.POST("", projectCtrl.CreateProject)
		projects.GET("/:project_id", projectCtrl.GetProjectByID)
		projects.PATCH("/:project_id", projectCtrl.UpdateProject)
		projects.DELETE("/:project_id", projectCtrl.DeleteProject)
	}

	workLogs := r.Group("/worklogs")
	{
		workLogs.GET("", workLogCtrl.GetAllWorkLogs)
		workLogs.POST("", workLogCtrl.CreateWorkLog)
		workLogs.GET("/:worklog_id", workLogCtrl.GetWorkLogByID)
		workLogs.PATCH("/:worklog_id", workLogCtrl.UpdateWorkLog)
		workLogs.DELETE("/:worklog_id", workLogCtrl.DeleteWorkLog)
		workLogs.GET("/:worklog_id/products", workLogCtrl.GetWorkLogProducts)
		workLogs.POST("/:worklog_id/products", workLogCtrl.AddWorkLogProduct)
		workLogs.DELETE("/:worklog_id/products/:work_log_product_id", workLogCtrl.RemoveWorkLogProduct)

		// Write-heavy entry mutations sit behind a tighter limiter.
		strict := middlewares.NewStrictRateLimiter()
		workLogs.GET("/:worklog_id/entries", entryCtrl.GetWorkLogEntries)
		workLogs.POST("/:worklog_id/entries", entryCtrl.CreateWorkLogEntry)
		workLogs.POST("/:worklog_id/entries/submit", strict, entryCtrl.SubmitWeek)
		workLogs.POST("/:worklog_id/entries/approve", strict, entryCtrl.ApproveEntries)
		workLogs.POST("/:worklog_id/entries/reject", strict, entryCtrl.RejectEntries)
		workLogs.GET("/:worklog_id/summary", entryCtrl.GetWeekSummary)
	}

	return r
}
