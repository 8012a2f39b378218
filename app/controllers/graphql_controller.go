package controllers

import (
	"errors"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/mymenu/mymenu/app/models"
	"github.com/mymenu/mymenu/app/services"
	"github.com/mymenu/mymenu/pkg/bind"
	"github.com/mymenu/mymenu/pkg/response"
)

// GraphQLController exposes the public menu as a read-only GraphQL query,
// for clients that want one round trip with field selection instead of the
// REST tree:
//
//	query { restaurant(shareToken: "abc123xyz") { name menus { name } } }
type GraphQLController struct {
	schema graphql.Schema
}

func NewGraphQLController(shareLinks *services.ShareLinkService) (*GraphQLController, error) {
	schema, err := buildPublicSchema(shareLinks)
	if err != nil {
		return nil, err
	}
	return &GraphQLController{schema: schema}, nil
}

// Query handles POST /api/graphql.
func (c *GraphQLController) Query(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Query     string                 `json:"query" validate:"required"`
		Variables map[string]interface{} `json:"variables"`
	}
	if err := bind.JSON(r, &body); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         c.schema,
		RequestString:  body.Query,
		VariableValues: body.Variables,
		Context:        r.Context(),
	})
	response.OK(w, result)
}

func buildPublicSchema(shareLinks *services.ShareLinkService) (graphql.Schema, error) {
	dishType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Dish",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.String},
			"name":        &graphql.Field{Type: graphql.String},
			"description": &graphql.Field{Type: graphql.String},
			"price":       &graphql.Field{Type: graphql.Float},
			"image":       &graphql.Field{Type: graphql.String},
			"spiceLevel":  &graphql.Field{Type: graphql.Int},
		},
	})

	categoryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Category",
		Fields: graphql.Fields{
			"id":   &graphql.Field{Type: graphql.String},
			"name": &graphql.Field{Type: graphql.String},
			"dishes": &graphql.Field{
				Type: graphql.NewList(dishType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					category, ok := p.Source.(models.Category)
					if !ok {
						return nil, nil
					}
					dishes := make([]models.Dish, 0, len(category.Dishes))
					for _, link := range category.Dishes {
						dishes = append(dishes, link.Dish)
					}
					return dishes, nil
				},
			},
		},
	})

	menuType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Menu",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.String},
			"name":        &graphql.Field{Type: graphql.String},
			"description": &graphql.Field{Type: graphql.String},
			"categories":  &graphql.Field{Type: graphql.NewList(categoryType)},
		},
	})

	restaurantType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Restaurant",
		Fields: graphql.Fields{
			"id":       &graphql.Field{Type: graphql.String},
			"name":     &graphql.Field{Type: graphql.String},
			"location": &graphql.Field{Type: graphql.String},
			"menus":    &graphql.Field{Type: graphql.NewList(menuType)},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"restaurant": &graphql.Field{
				Type: restaurantType,
				Args: graphql.FieldConfigArgument{
					"shareToken": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.String),
					},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					shareToken, _ := p.Args["shareToken"].(string)
					restaurant, err := shareLinks.Resolve(shareToken)
					if errors.Is(err, services.ErrNotFound) {
						return nil, nil
					}
					if err != nil {
						return nil, err
					}
					return restaurant, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: queryType})
}
