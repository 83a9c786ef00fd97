package items

import "philcali.me/lists/internal/data"

type CreateItemRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Quantity    *string `json:"quantity,omitempty"`
	Unit        *string `json:"unit,omitempty"`
	Price       *string `json:"price,omitempty"`
}

func (r *CreateItemRequest) ToData() data.ItemInputDTO {
	return data.ItemInputDTO{
		Name:        r.Name,
		Description: r.Description,
		Quantity:    r.Quantity,
		Unit:        r.Unit,
		Price:       r.Price,
	}
}

// UpdateItemRequest replaces all mutable fields; omitted fields become zero values.
type UpdateItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	Unit        string `json:"unit"`
	Price       string `json:"price"`
	IsDone      bool   `json:"isDone"`
}

func (r *UpdateItemRequest) ToData() data.ItemUpdateDTO {
	return data.ItemUpdateDTO{
		Name:        r.Name,
		Description: r.Description,
		Quantity:    r.Quantity,
		Unit:        r.Unit,
		Price:       r.Price,
		IsDone:      r.IsDone,
	}
}

type Item struct {
	UserId      string  `json:"userId"`
	ItemId      string  `json:"itemId"`
	CreatedAt   string  `json:"createdAt"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Quantity    string  `json:"quantity"`
	Unit        string  `json:"unit"`
	Price       string  `json:"price"`
	IsDone      bool    `json:"isDone"`
	ImageUrl    *string `json:"imageUrl,omitempty"`
}

func NewItem(dto data.ItemDTO) Item {
	return Item{
		UserId:      dto.UserId,
		ItemId:      dto.ItemId,
		CreatedAt:   dto.CreatedAt,
		Name:        dto.Name,
		Description: dto.Description,
		Quantity:    dto.Quantity,
		Unit:        dto.Unit,
		Price:       dto.Price,
		IsDone:      dto.IsDone,
		ImageUrl:    dto.ImageUrl,
	}
}

type ItemEnvelope struct {
	Item *Item `json:"item,omitempty"`
}

func NewItemEnvelope(dto data.ItemDTO) ItemEnvelope {
	item := NewItem(dto)
	return ItemEnvelope{Item: &item}
}

// NewDeletedEnvelope renders {} when nothing was stored under the key.
func NewDeletedEnvelope(dto *data.ItemDTO) ItemEnvelope {
	if dto == nil {
		return ItemEnvelope{}
	}
	return NewItemEnvelope(*dto)
}

func NewItemList(dtos []data.ItemDTO) []Item {
	items := make([]Item, len(dtos))
	for i, dto := range dtos {
		items[i] = NewItem(dto)
	}
	return items
}

type UploadUrl struct {
	UploadUrl string `json:"uploadUrl"`
}

func NewUploadUrl(url string) UploadUrl {
	return UploadUrl{UploadUrl: url}
}
