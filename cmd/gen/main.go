package main

import (
	"crm/internal/infra/persistence/model"

	"gorm.io/gen"
)

func main() {
	models := []any{
		model.UserModel{},
		model.CustomerModel{},
		model.OrderModel{},
		model.OrderItemModel{},
		model.ProductModel{},
		model.TagModel{},
		model.CommunicationModel{},
		model.TaskModel{},
	}

	gen := gen.NewGenerator(gen.Config{
		OutPath: "./internal/infra/persistence/postgres/query",
	})

	gen.ApplyBasic(models...)

	gen.Execute()
}
