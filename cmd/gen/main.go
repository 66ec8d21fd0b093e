package main

import (
	"kakilima/internal/infra/persistence/model"

	"gorm.io/gen"
)

func main() {
	models := []any{
		model.UserModel{},
		model.VendorModel{},
		model.MenuItemModel{},
		model.OrderModel{},
		model.OrderItemModel{},
		model.ReviewModel{},
		model.FavoriteModel{},
		model.UserDeviceModel{},
		model.VendorLocationSampleModel{},
	}

	gen := gen.NewGenerator(gen.Config{
		OutPath: "./internal/infra/persistence/postgres/query",
	})

	gen.ApplyBasic(models...)

	gen.Execute()
}
