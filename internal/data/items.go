package data

type ItemDTO struct {
	UserId      string  `dynamodbav:"userId"`
	ItemId      string  `dynamodbav:"itemId"`
	CreatedAt   string  `dynamodbav:"createdAt"`
	Name        string  `dynamodbav:"name"`
	Description string  `dynamodbav:"description"`
	Quantity    string  `dynamodbav:"quantity"`
	Unit        string  `dynamodbav:"unit"`
	Price       string  `dynamodbav:"price"`
	IsDone      bool    `dynamodbav:"isDone"`
	ImageUrl    *string `dynamodbav:"imageUrl,omitempty"`
}

type ItemInputDTO struct {
	Name        *string `dynamodbav:"name"`
	Description *string `dynamodbav:"description"`
	Quantity    *string `dynamodbav:"quantity"`
	Unit        *string `dynamodbav:"unit"`
	Price       *string `dynamodbav:"price"`
}

// ItemUpdateDTO replaces every mutable attribute of an item.
type ItemUpdateDTO struct {
	Name        string `dynamodbav:"name"`
	Description string `dynamodbav:"description"`
	Quantity    string `dynamodbav:"quantity"`
	Unit        string `dynamodbav:"unit"`
	Price       string `dynamodbav:"price"`
	IsDone      bool   `dynamodbav:"isDone"`
}

type ItemDataService interface {
	Repository[ItemDTO, ItemUpdateDTO]
}
