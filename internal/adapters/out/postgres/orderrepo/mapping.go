package orderrepo

import (
	"factory/internal/core/domain/model/controlorder"
	"factory/internal/core/domain/model/customerorder"
	"factory/internal/core/domain/model/kernel"
	"factory/internal/core/domain/model/plant"
	"factory/internal/core/domain/model/productionorder"
	"factory/internal/core/domain/model/supplyorder"
	"factory/internal/core/domain/model/warehouseorder"
	"factory/internal/core/domain/model/workstationorder"
)

func customerOrderFromDomain(s customerorder.State, version int64) CustomerOrderDTO {
	return CustomerOrderDTO{
		ID:          int64(s.ID),
		Number:      s.Number,
		Lines:       s.Lines,
		Status:      s.Status.String(),
		Scenario:    s.Scenario.String(),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
		CompletedAt: s.CompletedAt,
		Version:     version,
	}
}

func customerOrderToDomain(dto CustomerOrderDTO) (*customerorder.CustomerOrder, error) {
	status, err := customerorder.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	scenario, err := kernel.ParseScenario(dto.Scenario)
	if err != nil {
		return nil, err
	}
	return customerorder.Restore(customerorder.State{
		ID:          kernel.ID(dto.ID),
		Number:      dto.Number,
		Lines:       dto.Lines,
		Status:      status,
		Scenario:    scenario,
		CreatedAt:   dto.CreatedAt,
		UpdatedAt:   dto.UpdatedAt,
		CompletedAt: dto.CompletedAt,
		Version:     dto.Version,
	})
}

func warehouseOrderFromDomain(s warehouseorder.State, version int64) WarehouseOrderDTO {
	return WarehouseOrderDTO{
		ID:                int64(s.ID),
		Number:            s.Number,
		CustomerOrderID:   int64(s.CustomerOrderID),
		Items:             s.Items,
		Status:            s.Status.String(),
		TriggerScenario:   s.TriggerScenario.String(),
		ProductionOrderID: idPtr(s.ProductionOrderID),
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
		CompletedAt:       s.CompletedAt,
		Version:           version,
	}
}

func warehouseOrderToDomain(dto WarehouseOrderDTO) (*warehouseorder.WarehouseOrder, error) {
	status, err := warehouseorder.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	scenario, err := kernel.ParseScenario(dto.TriggerScenario)
	if err != nil {
		return nil, err
	}
	return warehouseorder.Restore(warehouseorder.State{
		ID:                kernel.ID(dto.ID),
		Number:            dto.Number,
		CustomerOrderID:   kernel.ID(dto.CustomerOrderID),
		Items:             dto.Items,
		Status:            status,
		TriggerScenario:   scenario,
		ProductionOrderID: kernelIDPtr(dto.ProductionOrderID),
		CreatedAt:         dto.CreatedAt,
		UpdatedAt:         dto.UpdatedAt,
		CompletedAt:       dto.CompletedAt,
		Version:           dto.Version,
	})
}

func productionOrderFromDomain(s productionorder.State, version int64) ProductionOrderDTO {
	return ProductionOrderDTO{
		ID:                     int64(s.ID),
		Number:                 s.Number,
		SourceWarehouseOrderID: idPtr(s.SourceWarehouseOrderID),
		SourceCustomerOrderID:  idPtr(s.SourceCustomerOrderID),
		Items:                  s.Items,
		Priority:               s.Priority.String(),
		DueDate:                s.DueDate,
		ScheduleID:             s.ScheduleID,
		Status:                 s.Status.String(),
		CreatedAt:              s.CreatedAt,
		UpdatedAt:              s.UpdatedAt,
		CompletedAt:            s.CompletedAt,
		CompletionSubmittedAt:  s.CompletionSubmittedAt,
		Version:                version,
	}
}

func productionOrderToDomain(dto ProductionOrderDTO) (*productionorder.ProductionOrder, error) {
	status, err := productionorder.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	priority, err := productionorder.ParsePriority(dto.Priority)
	if err != nil {
		return nil, err
	}
	return productionorder.Restore(productionorder.State{
		ID:                     kernel.ID(dto.ID),
		Number:                 dto.Number,
		SourceWarehouseOrderID: kernelIDPtr(dto.SourceWarehouseOrderID),
		SourceCustomerOrderID:  kernelIDPtr(dto.SourceCustomerOrderID),
		Items:                  dto.Items,
		Priority:               priority,
		DueDate:                dto.DueDate,
		ScheduleID:             dto.ScheduleID,
		Status:                 status,
		CreatedAt:              dto.CreatedAt,
		UpdatedAt:              dto.UpdatedAt,
		CompletedAt:            dto.CompletedAt,
		CompletionSubmittedAt:  dto.CompletionSubmittedAt,
		Version:                dto.Version,
	})
}

func controlOrderFromDomain(s controlorder.State, version int64) ControlOrderDTO {
	return ControlOrderDTO{
		ID:                int64(s.ID),
		Number:            s.Number,
		ProductionOrderID: int64(s.ProductionOrderID),
		WorkstationID:     int(s.WorkstationID),
		Category:          s.Category.String(),
		Steps:             s.Steps,
		Status:            s.Status.String(),
		StartedAt:         s.StartedAt,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
		CompletedAt:       s.CompletedAt,
		Version:           version,
	}
}

func controlOrderToDomain(dto ControlOrderDTO) (*controlorder.ControlOrder, error) {
	status, err := controlorder.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	category, err := plant.ParseCategory(dto.Category)
	if err != nil {
		return nil, err
	}
	return controlorder.Restore(controlorder.State{
		ID:                kernel.ID(dto.ID),
		Number:            dto.Number,
		ProductionOrderID: kernel.ID(dto.ProductionOrderID),
		WorkstationID:     plant.WorkstationID(dto.WorkstationID),
		Category:          category,
		Steps:             dto.Steps,
		Status:            status,
		StartedAt:         dto.StartedAt,
		CreatedAt:         dto.CreatedAt,
		UpdatedAt:         dto.UpdatedAt,
		CompletedAt:       dto.CompletedAt,
		Version:           dto.Version,
	})
}

func workstationOrderFromDomain(s workstationorder.State, version int64) WorkstationOrderDTO {
	return WorkstationOrderDTO{
		ID:                int64(s.ID),
		Number:            s.Number,
		Kind:              s.Kind.String(),
		WorkstationID:     int(s.WorkstationID),
		Output:            s.Output,
		Inputs:            s.Inputs,
		ControlOrderID:    idPtr(s.References.ControlOrderID),
		ProductionOrderID: idPtr(s.References.ProductionOrderID),
		CustomerOrderID:   idPtr(s.References.CustomerOrderID),
		WarehouseOrderID:  idPtr(s.References.WarehouseOrderID),
		SupplyOrderID:     idPtr(s.SupplyOrderID),
		Status:            s.Status.String(),
		ActualStart:       s.ActualStart,
		ActualFinish:      s.ActualFinish,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
		Version:           version,
	}
}

func workstationOrderToDomain(dto WorkstationOrderDTO) (*workstationorder.WorkstationOrder, error) {
	status, err := workstationorder.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	kind, err := plant.ParseKind(dto.Kind)
	if err != nil {
		return nil, err
	}
	return workstationorder.Restore(workstationorder.State{
		ID:            kernel.ID(dto.ID),
		Number:        dto.Number,
		Kind:          kind,
		WorkstationID: plant.WorkstationID(dto.WorkstationID),
		Output:        dto.Output,
		Inputs:        dto.Inputs,
		References: workstationorder.References{
			ControlOrderID:    kernelIDPtr(dto.ControlOrderID),
			ProductionOrderID: kernelIDPtr(dto.ProductionOrderID),
			CustomerOrderID:   kernelIDPtr(dto.CustomerOrderID),
			WarehouseOrderID:  kernelIDPtr(dto.WarehouseOrderID),
		},
		SupplyOrderID: kernelIDPtr(dto.SupplyOrderID),
		Status:        status,
		ActualStart:   dto.ActualStart,
		ActualFinish:  dto.ActualFinish,
		CreatedAt:     dto.CreatedAt,
		UpdatedAt:     dto.UpdatedAt,
		Version:       dto.Version,
	})
}

func supplyOrderFromDomain(s supplyorder.State, version int64) SupplyOrderDTO {
	return SupplyOrderDTO{
		ID:                      int64(s.ID),
		Number:                  s.Number,
		SourceControlOrderID:    int64(s.SourceControlOrderID),
		RequestingWorkstationID: int(s.RequestingWorkstationID),
		Items:                   s.Items,
		Status:                  s.Status.String(),
		CreatedAt:               s.CreatedAt,
		UpdatedAt:               s.UpdatedAt,
		CompletedAt:             s.CompletedAt,
		Version:                 version,
	}
}

func supplyOrderToDomain(dto SupplyOrderDTO) (*supplyorder.SupplyOrder, error) {
	status, err := supplyorder.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	return supplyorder.Restore(supplyorder.State{
		ID:                      kernel.ID(dto.ID),
		Number:                  dto.Number,
		SourceControlOrderID:    kernel.ID(dto.SourceControlOrderID),
		RequestingWorkstationID: plant.WorkstationID(dto.RequestingWorkstationID),
		Items:                   dto.Items,
		Status:                  status,
		CreatedAt:               dto.CreatedAt,
		UpdatedAt:               dto.UpdatedAt,
		CompletedAt:             dto.CompletedAt,
		Version:                 dto.Version,
	})
}

func idPtr(id *kernel.ID) *int64 {
	if id == nil {
		return nil
	}
	raw := int64(*id)
	return &raw
}

func kernelIDPtr(raw *int64) *kernel.ID {
	if raw == nil {
		return nil
	}
	return kernel.ID(*raw).Ptr()
}
