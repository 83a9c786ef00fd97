package items

import (
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"philcali.me/lists/internal/attachments"
	"philcali.me/lists/internal/data"
	"philcali.me/lists/internal/dynamodb/services"
	"philcali.me/lists/internal/logging"
)

func NewItemService(tableName string, indexName string, client services.DynamoDBClient, attachmentService attachments.AttachmentService) data.ItemDataService {
	return &services.RepositoryDynamoDBService[data.ItemDTO, data.ItemUpdateDTO]{
		DynamoDB:        client,
		Attachments:     attachmentService,
		TableName:       tableName,
		IndexName:       indexName,
		Name:            "Item",
		IdField:         "itemId",
		AttachmentField: "imageUrl",
		Logger:          logging.For("ItemsAccess"),
		OnUpdate: func(iud data.ItemUpdateDTO) expression.UpdateBuilder {
			return expression.
				Set(expression.Name("name"), expression.Value(iud.Name)).
				Set(expression.Name("description"), expression.Value(iud.Description)).
				Set(expression.Name("quantity"), expression.Value(iud.Quantity)).
				Set(expression.Name("unit"), expression.Value(iud.Unit)).
				Set(expression.Name("price"), expression.Value(iud.Price)).
				Set(expression.Name("isDone"), expression.Value(iud.IsDone))
		},
	}
}
