package tableroll

//go:generate mockgen -destination=mock/mock_service.go -package=mocktableroll -source=service.go

import (
	"context"

	"github.com/hearthglen/vtt-tokenroll/internal/dice"
	"github.com/hearthglen/vtt-tokenroll/internal/entities"
	apperrors "github.com/hearthglen/vtt-tokenroll/internal/errors"
)

// Service is the roll primitive: given a table, produce an ordered,
// possibly-empty sequence of drawn entries.
type Service interface {
	// Roll draws from the table according to its formula and draw count
	Roll(ctx context.Context, table *entities.RollTable) (*entities.TableResult, error)
}

// service implements Service with a weighted draw over dice rolls
type service struct {
	diceRoller dice.Roller
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	DiceRoller dice.Roller // Optional, will use the random roller if nil
}

// NewService creates a new table-rolling service
func NewService(cfg *ServiceConfig) Service {
	svc := &service{
		diceRoller: dice.NewRandomRoller(),
	}
	if cfg != nil && cfg.DiceRoller != nil {
		svc.diceRoller = cfg.DiceRoller
	}
	return svc
}

// Roll implements Service.Roll
func (s *service) Roll(ctx context.Context, table *entities.RollTable) (*entities.TableResult, error) {
	if table == nil {
		return nil, apperrors.InvalidArgument("table cannot be nil")
	}

	count := table.Formula.Count
	if count < 1 {
		count = 1
	}

	sides := table.Formula.Sides
	if sides < 1 {
		// Tables imported without a formula roll a die as wide as their
		// highest entry bound
		for _, entry := range table.Entries {
			if entry.High > sides {
				sides = entry.High
			}
		}
		if sides < 1 {
			sides = 1
		}
	}

	draws := table.DrawCount
	if draws < 1 {
		draws = 1
	}

	result := &entities.TableResult{TableID: table.ID}
	for i := 0; i < draws; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rolled, err := s.diceRoller.Roll(count, sides, 0)
		if err != nil {
			return nil, apperrors.Wrapf(err, "failed to roll table '%s'", table.ID)
		}

		for _, entry := range table.Entries {
			if entry.Contains(rolled.Total) {
				result.Entries = append(result.Entries, entities.ResultEntry{Text: entry.Text, Roll: rolled.Total})
				break
			}
		}
	}

	return result, nil
}
