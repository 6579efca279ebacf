package account

import (
	"github.com/DioGolang/GoBank/internal/application/usecase/operation"
	"github.com/DioGolang/GoBank/pkg/clock"
)

const targetType = "Account"

type Service struct {
	orchestrator *operation.Orchestrator
	guard        *operation.Guard
	clock        clock.Clock
}

func NewService(orchestrator *operation.Orchestrator, guard *operation.Guard, clk clock.Clock) *Service {
	return &Service{orchestrator: orchestrator, guard: guard, clock: clk}
}

var _ UseCase = (*Service)(nil)
