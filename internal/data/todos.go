package data

type TodoDTO struct {
	UserId        string  `dynamodbav:"userId"`
	TodoId        string  `dynamodbav:"todoId"`
	CreatedAt     string  `dynamodbav:"createdAt"`
	Name          string  `dynamodbav:"name"`
	DueDate       string  `dynamodbav:"dueDate"`
	Done          bool    `dynamodbav:"done"`
	AttachmentUrl *string `dynamodbav:"attachmentUrl,omitempty"`
}

type TodoInputDTO struct {
	Name    *string `dynamodbav:"name"`
	DueDate *string `dynamodbav:"dueDate"`
}

// TodoUpdateDTO replaces every mutable attribute of a todo.
type TodoUpdateDTO struct {
	Name    string `dynamodbav:"name"`
	DueDate string `dynamodbav:"dueDate"`
	Done    bool   `dynamodbav:"done"`
}

type TodoDataService interface {
	Repository[TodoDTO, TodoUpdateDTO]
}
