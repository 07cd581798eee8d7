package routes

import (
	"github.com/gin-gonic/gin"
)

func ShoppingRoutes(incomingRoutes *gin.Engine, h Handlers) {
	shopping := incomingRoutes.Group("/shopping")
	shopping.GET("/:pin", h.Shopping.GetFoodAvailability())
	shopping.GET("/top-restaurants/:pin", h.Shopping.GetTopRestaurants())
	shopping.GET("/foods-in-30-min/:pin", h.Shopping.GetFoodsIn30Min())
	shopping.GET("/search/:pin", h.Shopping.SearchFoods())
	shopping.GET("/offers/:pin", h.Shopping.GetAvailableOffers())
	shopping.GET("/restaurant/:id", h.Shopping.GetRestaurantByID())
}
