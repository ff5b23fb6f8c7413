package queries

import (
	"context"

	"factory/internal/core/application/orchestration"
	"factory/internal/core/domain/model/kernel"
)

// ProgressReader is implemented by orchestration.ProgressReader.
type ProgressReader interface {
	ControlOrderProgress(ctx context.Context, id kernel.ID) (kernel.Progress, error)
	ProductionOrderProgress(ctx context.Context, id kernel.ID) (kernel.Progress, error)
	CustomerOrderProgress(ctx context.Context, id kernel.ID) (orchestration.CustomerProgress, error)
}

var _ ProgressReader = orchestration.ProgressReader{}

type ProgressView struct {
	Total      int
	Completed  int
	Percent    float64
	IsComplete bool
}

func progressView(p kernel.Progress) ProgressView {
	return ProgressView{Total: p.Total, Completed: p.Completed, Percent: p.Percent(), IsComplete: p.IsComplete()}
}

// GetProgressQueryResponse carries the direct children progress in Progress. For
// customer orders, Breakdown splits it by level.
type GetProgressQueryResponse struct {
	OrderID   kernel.ID
	OrderType kernel.OrderType
	Progress  ProgressView
	Breakdown map[kernel.OrderType]ProgressView
}

type GetProgressQueryHandler struct {
	reader ProgressReader
}

func NewGetProgressQueryHandler(reader ProgressReader) GetProgressQueryHandler {
	return GetProgressQueryHandler{reader: reader}
}

func (h GetProgressQueryHandler) Handle(
	ctx context.Context,
	query GetProgressQuery,
) (GetProgressQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetProgressQueryResponse{}, err
	}

	response := GetProgressQueryResponse{OrderID: query.OrderID(), OrderType: query.OrderType()}
	switch query.OrderType() {
	case kernel.ControlOrderType:
		progress, err := h.reader.ControlOrderProgress(ctx, query.OrderID())
		if err != nil {
			return GetProgressQueryResponse{}, err
		}
		response.Progress = progressView(progress)
	case kernel.ProductionOrderType:
		progress, err := h.reader.ProductionOrderProgress(ctx, query.OrderID())
		if err != nil {
			return GetProgressQueryResponse{}, err
		}
		response.Progress = progressView(progress)
	default:
		progress, err := h.reader.CustomerOrderProgress(ctx, query.OrderID())
		if err != nil {
			return GetProgressQueryResponse{}, err
		}
		response.Progress = progressView(progress.ProductionOrders)
		response.Breakdown = map[kernel.OrderType]ProgressView{
			kernel.ProductionOrderType:  progressView(progress.ProductionOrders),
			kernel.ControlOrderType:     progressView(progress.ControlOrders),
			kernel.WorkstationOrderType: progressView(progress.FinalAssembly),
		}
	}
	return response, nil
}
