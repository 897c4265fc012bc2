package echoapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/nkamau/elimu/core/comment"
	"github.com/nkamau/elimu/core/user"
)

// streamBufferSize is how many undelivered events a single stream tolerates
// before it is considered too slow and starts dropping.
const streamBufferSize = 32

type commentApi struct {
	svc      *comment.Service
	usrSvc   *user.Service
	registry *comment.Registry
	validate *validator.Validate
}

func registerCommentAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := commentApi{
		svc:      deps.CommentSvc,
		usrSvc:   deps.UserSvc,
		registry: deps.Registry,
		validate: deps.Validate,
	}

	cg := g.Group("/courses/:id/comments")

	// anyone can read and listen
	cg.GET("", api.query)
	cg.GET("/stream", api.stream)

	// posting and editing require authentication
	ag := cg.Group("", jwt)
	ag.POST("", api.create)
	ag.PUT("/:commentId", api.update)
	ag.DELETE("/:commentId", api.delete)
}

// Handlers

func (api *commentApi) query(ctx echo.Context) error {
	comments, err := api.svc.QueryByCourse(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying course comments")
	}
	return ctx.JSON(http.StatusOK, comments)
}

func (api *commentApi) create(ctx echo.Context) error {
	var data comment.NewComment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewComment")
	}

	author, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	cmt, err := api.svc.Create(ctx.Request().Context(), author, ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, cmt)
}

func (api *commentApi) update(ctx echo.Context) error {
	var data comment.UpdateComment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateComment")
	}

	actor, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	cmt, err := api.svc.Update(ctx.Request().Context(), actor, ctx.Param("id"), ctx.Param("commentId"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cmt)
}

func (api *commentApi) delete(ctx echo.Context) error {
	actor, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	if err := api.svc.Delete(ctx.Request().Context(), actor, ctx.Param("id"), ctx.Param("commentId")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// stream serves the course's comment events over Server-Sent Events until
// the client goes away. Events missed before connecting are not replayed;
// clients are expected to fetch the comment list first.
func (api *commentApi) stream(ctx echo.Context) error {
	courseID := ctx.Param("id")

	res := ctx.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set(echo.HeaderConnection, "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush() // commit headers so the client knows the stream is live

	sub := newEventStream()
	api.registry.Subscribe(courseID, sub)
	defer api.registry.Unsubscribe(courseID, sub)

	done := ctx.Request().Context().Done()
	for {
		select {
		case <-done:
			return nil
		case event := <-sub.events:
			if err := writeSSEEvent(res, event); err != nil {
				return nil // client is gone; unsubscribe and bail
			}
			res.Flush()
		}
	}
}

// eventStream adapts a buffered channel to the subscriber contract:
// Send never blocks the broadcasting goroutine.
type eventStream struct {
	events chan comment.Event
}

var _ comment.Subscriber = (*eventStream)(nil) // interface compliance check

var errStreamBlocked = errors.New("stream buffer full, event dropped")

func newEventStream() *eventStream {
	return &eventStream{events: make(chan comment.Event, streamBufferSize)}
}

func (es *eventStream) Send(event comment.Event) error {
	select {
	case es.events <- event:
		return nil
	default:
		return errStreamBlocked
	}
}

// writeSSEEvent frames one event on the wire as "event: <kind>\ndata: <JSON>\n\n".
// Created and updated events carry the full comment; deleted events only its id.
func writeSSEEvent(w http.ResponseWriter, event comment.Event) error {
	var payload interface{}
	if event.Kind == comment.EventDeleted {
		payload = echo.Map{"id": event.CommentID}
	} else {
		payload = event.Comment
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "marshalling event payload")
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Kind, data)
	return err
}
