package router

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/DjordjeVuckovic/music-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/music-hunter/internal/domain/music"
	"github.com/DjordjeVuckovic/music-hunter/internal/domain/query"
	"github.com/DjordjeVuckovic/music-hunter/internal/search"
	"github.com/DjordjeVuckovic/music-hunter/pkg/pagination"
	"github.com/labstack/echo/v4"
)

type Searcher interface {
	Search(ctx context.Context, req query.Request) (*search.Result, error)
	GetSong(ctx context.Context, id string) (*music.Song, error)
	GetArtist(ctx context.Context, id string) (*music.Artist, error)
	GetAlbum(ctx context.Context, id string) (*music.Album, error)
}

type SearchRouter struct {
	e        *echo.Echo
	searcher Searcher
}

func NewSearchRouter(e *echo.Echo, searcher Searcher) *SearchRouter {
	return &SearchRouter{
		e:        e,
		searcher: searcher,
	}
}

func (r *SearchRouter) Bind() {
	r.e.GET("/search", r.searchHandler)
	r.e.GET("/song/:id", r.songHandler)
	r.e.GET("/artist/:id", r.artistHandler)
	r.e.GET("/album/:id", r.albumHandler)
}

// searchHandler godoc
// @Summary Search the music catalog
// @Tags search
// @Produce json
// @Param q query string false "Free text"
// @Param type query string false "Item type" Enums(song, artist, album)
// @Param artist query string false "Artist filter"
// @Param album query string false "Album filter"
// @Param isrc query string false "ISRC filter (songs)"
// @Param upc query string false "UPC filter (albums)"
// @Param limit query int false "Page size" minimum(1) maximum(100) default(20)
// @Param offset query int false "Offset" minimum(0) default(0)
// @Success 200 {object} SearchResponse
// @Failure 400 {object} apperr.ErrorResponse
// @Router /search [get]
func (r *SearchRouter) searchHandler(c echo.Context) error {
	page, err := parsePage(c)
	if err != nil {
		return err
	}

	itemType, err := music.ParseItemType(c.QueryParam("type"))
	if err != nil {
		return apperr.NewValidationWrap("invalid type", err)
	}

	req := query.Request{
		Text:     c.QueryParam("q"),
		ItemType: itemType,
		Artist:   c.QueryParam("artist"),
		Album:    c.QueryParam("album"),
		ISRC:     c.QueryParam("isrc"),
		UPC:      c.QueryParam("upc"),
		Limit:    page.Limit,
		Offset:   page.Offset,
	}

	res, err := r.searcher.Search(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, pagination.NewOffsetResult(res.Items, res.Total, page.Limit, page.Offset))
}

// SearchResponse documents the search payload.
type SearchResponse pagination.OffsetResult[music.Item]

func parsePage(c echo.Context) (*pagination.OffsetRequest, error) {
	page := &pagination.OffsetRequest{}

	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return nil, apperr.NewValidationWrap("invalid limit", err)
		}
		page.Limit = limit
		if limit == 0 {
			return nil, apperr.NewValidation(fmt.Sprintf("limit must be between 1 and %d", pagination.MaxLimit))
		}
	}

	if raw := c.QueryParam("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			return nil, apperr.NewValidationWrap("invalid offset", err)
		}
		page.Offset = offset
	}

	if err := page.Validate(); err != nil {
		return nil, apperr.NewValidation(err.Error())
	}

	return page, nil
}

func pathID(c echo.Context) (string, error) {
	id := c.Param("id")
	if !music.ValidID(id) {
		return "", apperr.NewValidation("id must be 16 characters of [0-9a-z]")
	}
	return id, nil
}

// songHandler godoc
// @Summary Get a song
// @Tags catalog
// @Produce json
// @Param id path string true "Song id"
// @Success 200 {object} music.Song
// @Failure 400 {object} apperr.ErrorResponse
// @Failure 404 {object} apperr.ErrorResponse
// @Router /song/{id} [get]
func (r *SearchRouter) songHandler(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	song, err := r.searcher.GetSong(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if song == nil {
		return apperr.NewNotFound("song", id)
	}

	return c.JSON(http.StatusOK, song)
}

// artistHandler godoc
// @Summary Get an artist
// @Tags catalog
// @Produce json
// @Param id path string true "Artist id"
// @Success 200 {object} music.Artist
// @Failure 400 {object} apperr.ErrorResponse
// @Failure 404 {object} apperr.ErrorResponse
// @Router /artist/{id} [get]
func (r *SearchRouter) artistHandler(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	artist, err := r.searcher.GetArtist(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if artist == nil {
		return apperr.NewNotFound("artist", id)
	}

	return c.JSON(http.StatusOK, artist)
}

// albumHandler godoc
// @Summary Get an album
// @Tags catalog
// @Produce json
// @Param id path string true "Album id"
// @Success 200 {object} music.Album
// @Failure 400 {object} apperr.ErrorResponse
// @Failure 404 {object} apperr.ErrorResponse
// @Router /album/{id} [get]
func (r *SearchRouter) albumHandler(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	album, err := r.searcher.GetAlbum(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if album == nil {
		return apperr.NewNotFound("album", id)
	}

	return c.JSON(http.StatusOK, album)
}
