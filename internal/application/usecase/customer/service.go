package customer

import (
	"github.com/DioGolang/GoBank/internal/application/port/outbound"
	"github.com/DioGolang/GoBank/internal/application/usecase/operation"
	"github.com/DioGolang/GoBank/pkg/clock"
)

const targetType = "Customer"

type Service struct {
	orchestrator *operation.Orchestrator
	guard        *operation.Guard
	hasher       outbound.Hasher
	clock        clock.Clock
}

func NewService(orchestrator *operation.Orchestrator, guard *operation.Guard, hasher outbound.Hasher, clk clock.Clock) *Service {
	return &Service{orchestrator: orchestrator, guard: guard, hasher: hasher, clock: clk}
}

var _ UseCase = (*Service)(nil)
