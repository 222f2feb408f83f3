package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/abhishek972986/porter-managment/internal/apierror"
	"github.com/abhishek972986/porter-managment/internal/dto"
	"github.com/abhishek972986/porter-managment/internal/model"
	"github.com/abhishek972986/porter-managment/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Column names of the bulk import file.
const (
	colFromCode    = "fromLocationCode"
	colToCode      = "toLocationCode"
	colCarrierName = "carrierName"
	colCost        = "cost"

	maxReportedImportErrors = 10
)

var importColumns = []string{colFromCode, colToCode, colCarrierName, colCost}

// CommuteCostRow is one data row of the import file. Line is 1-based and
// counts the header.
type CommuteCostRow struct {
	Line   int
	Values map[string]string
}

// ParseCommuteCostCSV reads a header row and returns the data rows keyed by
// column name. Column order is free; unknown columns are ignored.
func ParseCommuteCostCSV(r io.Reader) ([]CommuteCostRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, apierror.BadRequest("csv file is empty")
		}
		return nil, apierror.BadRequest("could not read csv header: " + err.Error())
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	var missing []string
	for _, col := range importColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, apierror.BadRequest("csv is missing columns: " + strings.Join(missing, ", "))
	}

	var rows []CommuteCostRow
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, apierror.BadRequest(fmt.Sprintf("csv line %d: %v", line, err))
		}
		if isBlank(record) {
			continue
		}
		values := make(map[string]string, len(importColumns))
		for _, col := range importColumns {
			if i := index[col]; i < len(record) {
				values[col] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, CommuteCostRow{Line: line, Values: values})
	}
	return rows, nil
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Import upserts every row on its (from, to, carrier) triple. A failing row
// is reported and skipped; the rest are still applied.
func (s *commuteCostService) Import(ctx context.Context, actor uuid.UUID, rows []CommuteCostRow) (*dto.ImportResult, error) {
	result := &dto.ImportResult{Errors: []dto.ImportRowError{}}
	locationCache := map[string]*model.Location{}
	carrierCache := map[string]*model.Carrier{}

	for _, row := range rows {
		if err := s.importRow(ctx, row, locationCache, carrierCache); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			message := "failed to import row"
			var apiErr *apierror.Error
			if errors.As(err, &apiErr) {
				message = apiErr.Message
			} else {
				log.Error().Err(err).Int("row", row.Line).Msg("commute cost import row failed")
			}
			result.ErrorCount++
			if len(result.Errors) < maxReportedImportErrors {
				result.Errors = append(result.Errors, dto.ImportRowError{Row: row.Line, Data: row.Values, Error: message})
			}
			continue
		}
		result.SuccessCount++
	}

	log.Info().Int("success", result.SuccessCount).Int("errors", result.ErrorCount).Msg("commute cost import finished")
	s.activity.Record(ctx, actor, model.ActivityCommuteCostCreated, "Commute costs imported from csv",
		map[string]any{"successCount": result.SuccessCount, "errorCount": result.ErrorCount})
	return result, nil
}

// importRow returns an *apierror.Error for row-level problems. Other errors
// come from the database and are reported without their details.
func (s *commuteCostService) importRow(ctx context.Context, row CommuteCostRow, locations map[string]*model.Location, carriers map[string]*model.Carrier) error {
	from, err := s.cachedLocation(ctx, locations, NormalizeCode(row.Values[colFromCode]))
	if err != nil {
		return err
	}
	to, err := s.cachedLocation(ctx, locations, NormalizeCode(row.Values[colToCode]))
	if err != nil {
		return err
	}
	carrier, err := s.cachedCarrier(ctx, carriers, strings.ToLower(row.Values[colCarrierName]))
	if err != nil {
		return err
	}
	if from == nil || to == nil || carrier == nil {
		return apierror.NotFound("Location or carrier not found")
	}

	cost, err := decimal.NewFromString(row.Values[colCost])
	if err != nil {
		return apierror.BadRequest("invalid cost")
	}
	if cost.IsNegative() {
		return apierror.BadRequest("cost must be zero or greater")
	}

	route := repository.Route{FromLocationID: from.ID, ToLocationID: to.ID, CarrierID: carrier.ID}
	existing, err := s.repo.FindByRoute(ctx, route)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return s.repo.Create(ctx, &model.CommuteCost{
			FromLocationID: route.FromLocationID,
			ToLocationID:   route.ToLocationID,
			CarrierID:      route.CarrierID,
			Cost:           cost,
			Active:         true,
		})
	case err != nil:
		return err
	}
	existing.Cost = cost
	existing.Active = true
	return s.repo.Update(ctx, existing)
}

func (s *commuteCostService) cachedLocation(ctx context.Context, cache map[string]*model.Location, code string) (*model.Location, error) {
	if l, ok := cache[code]; ok {
		return l, nil
	}
	l, err := s.locations.FindByCode(ctx, code)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	cache[code] = l
	return l, nil
}

func (s *commuteCostService) cachedCarrier(ctx context.Context, cache map[string]*model.Carrier, name string) (*model.Carrier, error) {
	if c, ok := cache[name]; ok {
		return c, nil
	}
	c, err := s.carriers.FindByName(ctx, name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	cache[name] = c
	return c, nil
}
