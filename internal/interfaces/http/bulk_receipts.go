package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lithammer/shortuuid/v3"
	"tickets/internal/domain/ticket"
)

type BulkReceiptsRequest struct {
	References []string `json:"references"`
	Variant    string   `json:"variant"`
}

type BulkReceiptsResponse struct {
	JobID string `json:"job_id"`
	Count int    `json:"count"`
}

// BulkReceiptsHandler accepts the job and hands it to the event bus. The
// rendering itself happens asynchronously on the message router.
func (s *Server) BulkReceiptsHandler(c echo.Context) error {
	ctx := c.Request().Context()

	var request BulkReceiptsRequest
	err := c.Bind(&request)
	if err != nil {
		return err
	}

	if len(request.References) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "references are required")
	}
	if _, err := ticket.ParseVariant(request.Variant); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	jobID := "job-" + shortuuid.New()

	err = s.bus.Publish(ctx, ticket.BulkReceiptRequested{
		Header:     ticket.NewEventHeader(),
		JobID:      jobID,
		References: request.References,
		Variant:    request.Variant,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusAccepted, BulkReceiptsResponse{
		JobID: jobID,
		Count: len(request.References),
	})
}
