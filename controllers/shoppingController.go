package controllers

import (
	"context"
	"net/http"

	"food-marketplace/logger"
	"food-marketplace/services"

	"github.com/gin-gonic/gin"
)

type ShoppingController struct {
	shopping *services.ShoppingService
	log      *logger.Logger
}

func NewShoppingController(shopping *services.ShoppingService, log *logger.Logger) *ShoppingController {
	return &ShoppingController{shopping: shopping, log: log.WithComponent("shopping_controller")}
}

// byParam adapts a lookup keyed by a single path parameter.
func byParam[T any](ctl *ShoppingController, param string, lookup func(context.Context, string) (T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := lookup(c.Request.Context(), c.Param(param))
		if err != nil {
			respondError(c, ctl.log, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func (ctl *ShoppingController) GetFoodAvailability() gin.HandlerFunc {
	return byParam(ctl, "pin", ctl.shopping.FoodAvailability)
}

func (ctl *ShoppingController) GetTopRestaurants() gin.HandlerFunc {
	return byParam(ctl, "pin", ctl.shopping.TopRestaurants)
}

func (ctl *ShoppingController) GetFoodsIn30Min() gin.HandlerFunc {
	return byParam(ctl, "pin", ctl.shopping.FoodsIn30Min)
}

func (ctl *ShoppingController) SearchFoods() gin.HandlerFunc {
	return byParam(ctl, "pin", ctl.shopping.SearchFoods)
}

func (ctl *ShoppingController) GetAvailableOffers() gin.HandlerFunc {
	return byParam(ctl, "pin", ctl.shopping.AvailableOffers)
}

func (ctl *ShoppingController) GetRestaurantByID() gin.HandlerFunc {
	return byParam(ctl, "id", ctl.shopping.RestaurantByID)
}
