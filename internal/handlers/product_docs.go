package handlers

import "productapi/internal/docs"

const productsTag = "Products"

func productSchema() *docs.Schema {
	return &docs.Schema{
		Type: "object",
		Properties: map[string]*docs.Schema{
			"id":           {Type: "integer", Description: "The product ID", Example: 1},
			"name":         {Type: "string", Description: "Product name", Example: "Curved monitor 49 inches"},
			"price":        {Type: "number", Description: "Product price", Example: 300},
			"availability": {Type: "boolean", Description: "Product availability", Example: true},
			"created_at":   {Type: "string", Description: "Creation timestamp"},
			"updated_at":   {Type: "string", Description: "Last update timestamp"},
		},
	}
}

func productPayloadSchema(withAvailability bool) *docs.Schema {
	s := &docs.Schema{
		Type: "object",
		Properties: map[string]*docs.Schema{
			"name":  {Type: "string", Example: "Curved monitor 49 inches"},
			"price": {Type: "number", Example: 399},
		},
	}
	if withAvailability {
		s.Properties["availability"] = &docs.Schema{Type: "boolean", Example: true}
	}
	return s
}

func dataSchema(data *docs.Schema) *docs.Schema {
	return &docs.Schema{
		Type:       "object",
		Properties: map[string]*docs.Schema{"data": data},
	}
}

func idParameter(description string) []docs.Parameter {
	return []docs.Parameter{{
		In:          "path",
		Name:        "id",
		Description: description,
		Required:    true,
		Schema:      &docs.Schema{Type: "integer"},
	}}
}

func productResponse(description string) docs.Response {
	return docs.Response{
		Description: description,
		Content:     docs.JSONContent(dataSchema(docs.Ref("Product"))),
	}
}

var (
	docGetProducts = &docs.Operation{
		Summary:     "Get a list of products",
		Description: "Return a list of products",
		Tags:        []string{productsTag},
		Responses: map[string]docs.Response{
			"200": {
				Description: "Successful response",
				Content: docs.JSONContent(dataSchema(&docs.Schema{
					Type:  "array",
					Items: docs.Ref("Product"),
				})),
			},
		},
	}

	docGetProductByID = &docs.Operation{
		Summary:     "Get a product by ID",
		Description: "Return a product based on its unique ID",
		Tags:        []string{productsTag},
		Parameters:  idParameter("The ID of the product to retrieve"),
		Responses: map[string]docs.Response{
			"200": productResponse("Successful response"),
			"400": {Description: "Bad Request - Invalid ID"},
			"404": {Description: "Not found"},
		},
	}

	docCreateProduct = &docs.Operation{
		Summary:     "Create a new product",
		Description: "Return the new record in the database",
		Tags:        []string{productsTag},
		RequestBody: &docs.RequestBody{
			Required: true,
			Content:  docs.JSONContent(productPayloadSchema(false)),
		},
		Responses: map[string]docs.Response{
			"201": productResponse("Product created successfully"),
			"400": {Description: "Bad Request - invalid input data"},
		},
	}

	docUpdateProduct = &docs.Operation{
		Summary:     "Update a product with user input",
		Description: "Return the updated product",
		Tags:        []string{productsTag},
		Parameters:  idParameter("The ID of the product to update"),
		RequestBody: &docs.RequestBody{
			Required: true,
			Content:  docs.JSONContent(productPayloadSchema(true)),
		},
		Responses: map[string]docs.Response{
			"200": productResponse("Successful response"),
			"400": {Description: "Bad Request - Invalid ID or Invalid input data"},
			"404": {Description: "Product not found"},
		},
	}

	docUpdateAvailability = &docs.Operation{
		Summary:     "Toggle product availability",
		Description: "Return the product with its availability flipped",
		Tags:        []string{productsTag},
		Parameters:  idParameter("The ID of the product to update"),
		Responses: map[string]docs.Response{
			"200": productResponse("Successful response"),
			"400": {Description: "Bad Request - Invalid ID"},
			"404": {Description: "Product not found"},
		},
	}

	docDeleteProduct = &docs.Operation{
		Summary:     "Delete a product by ID",
		Description: "Return a confirmation message",
		Tags:        []string{productsTag},
		Parameters:  idParameter("The ID of the product to delete"),
		Responses: map[string]docs.Response{
			"200": {
				Description: "Successful response",
				Content: docs.JSONContent(&docs.Schema{
					Type: "object",
					Properties: map[string]*docs.Schema{
						"message": {Type: "string", Example: MsgProductDeleted},
					},
				}),
			},
			"400": {Description: "Bad Request - Invalid ID"},
			"404": {Description: "Product not found"},
		},
	}
)
