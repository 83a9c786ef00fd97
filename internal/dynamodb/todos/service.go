package todos

import (
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"philcali.me/lists/internal/attachments"
	"philcali.me/lists/internal/data"
	"philcali.me/lists/internal/dynamodb/services"
	"philcali.me/lists/internal/logging"
)

func NewTodoService(tableName string, indexName string, client services.DynamoDBClient, attachmentService attachments.AttachmentService) data.TodoDataService {
	return &services.RepositoryDynamoDBService[data.TodoDTO, data.TodoUpdateDTO]{
		DynamoDB:        client,
		Attachments:     attachmentService,
		TableName:       tableName,
		IndexName:       indexName,
		Name:            "Todo",
		IdField:         "todoId",
		AttachmentField: "attachmentUrl",
		Logger:          logging.For("TodosAccess"),
		OnUpdate: func(tud data.TodoUpdateDTO) expression.UpdateBuilder {
			return expression.
				Set(expression.Name("name"), expression.Value(tud.Name)).
				Set(expression.Name("dueDate"), expression.Value(tud.DueDate)).
				Set(expression.Name("done"), expression.Value(tud.Done))
		},
	}
}
