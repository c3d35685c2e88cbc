package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerFavoriteRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listFavorites",
		Method:      http.MethodGet,
		Path:        "/api/v1/favorites",
		Summary:     "List favorites",
		Description: "Returns the prompt IDs the user has favorited, in the order they were added",
		Tags:        []string{"Favorites"},
		Security:    bearerSecurity,
	}, s.handleListFavorites)

	huma.Register(s.api, huma.Operation{
		OperationID: "addFavorite",
		Method:      http.MethodPut,
		Path:        "/api/v1/favorites/{id}",
		Summary:     "Add favorite",
		Description: "Adds a prompt to the user's favorites; adding twice is a no-op",
		Tags:        []string{"Favorites"},
		Security:    bearerSecurity,
	}, s.handleAddFavorite)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeFavorite",
		Method:      http.MethodDelete,
		Path:        "/api/v1/favorites/{id}",
		Summary:     "Remove favorite",
		Description: "Removes a prompt from the user's favorites",
		Tags:        []string{"Favorites"},
		Security:    bearerSecurity,
	}, s.handleRemoveFavorite)
}

// FavoriteInput identifies a prompt.
type FavoriteInput struct {
	ID int `path:"id" minimum:"1" doc:"Prompt ID"`
}

// FavoritesResponse is the user's favorites list.
type FavoritesResponse struct {
	Loves []int `json:"loves" doc:"Favorited prompt IDs"`
}

// FavoritesOutput wraps the favorites list for Huma.
type FavoritesOutput struct {
	Body FavoritesResponse
}

func (s *Server) handleListFavorites(ctx context.Context, _ *struct{}) (*FavoritesOutput, error) {
	user, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	loves, err := s.services.Favorites.List(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &FavoritesOutput{Body: FavoritesResponse{Loves: loves}}, nil
}

func (s *Server) handleAddFavorite(ctx context.Context, input *FavoriteInput) (*FavoritesOutput, error) {
	user, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	loves, err := s.services.Favorites.Add(ctx, user.ID, input.ID)
	if err != nil {
		return nil, err
	}
	return &FavoritesOutput{Body: FavoritesResponse{Loves: loves}}, nil
}

func (s *Server) handleRemoveFavorite(ctx context.Context, input *FavoriteInput) (*FavoritesOutput, error) {
	user, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	loves, err := s.services.Favorites.Remove(ctx, user.ID, input.ID)
	if err != nil {
		return nil, err
	}
	return &FavoritesOutput{Body: FavoritesResponse{Loves: loves}}, nil
}
