package service

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmynk/finanzas/internal/calculator"
	"github.com/mmynk/finanzas/internal/metrics"
	"github.com/mmynk/finanzas/internal/middleware"
	"github.com/mmynk/finanzas/internal/models"
	"github.com/mmynk/finanzas/internal/respond"
	"github.com/mmynk/finanzas/internal/storage"
)

// incomeSourceKeys are the accepted names of the income label, by priority.
var incomeSourceKeys = []string{"fuenteIngreso", "fuenteIngresos"}

// FinanceService serves the personal and financial information endpoints.
// Handlers read the owner email placed in the context by the auth middleware.
type FinanceService struct {
	store   storage.Store
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

// NewFinanceService creates the service. m may be nil.
func NewFinanceService(store storage.Store, m *metrics.Metrics, logger *slog.Logger) *FinanceService {
	return &FinanceService{
		store:   store,
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
}

type savedResponse struct {
	Mensaje string `json:"mensaje"`
	ID      string `json:"id"`
}

// financialSummary is ExpenseSummary plus the income label.
type financialSummary struct {
	models.ExpenseSummary
	FuenteIngreso string `json:"fuenteIngreso"`
}

type financialSavedResponse struct {
	Mensaje string           `json:"mensaje"`
	Gastos  financialSummary `json:"gastos"`
}

type financialInfoResponse struct {
	financialSummary
	Categorias []string  `json:"categorias"`
	Valores    []float64 `json:"valores"`
}

type allPersonalInfoResponse struct {
	TotalRegistros int                    `json:"total_registros"`
	Personas       []*models.PersonalInfo `json:"personas"`
}

func (s *FinanceService) timestamp() string {
	return s.now().Format(models.TimestampLayout)
}

func identity(r *http.Request) string {
	if email := middleware.GetEmail(r.Context()); email != "" {
		return email
	}
	return models.AnonymousEmail
}

// SavePersonalInfo appends the scalar fields of the body as a new record.
// Reserved keys and non-scalar values are dropped.
func (s *FinanceService) SavePersonalInfo(w http.ResponseWriter, r *http.Request) {
	body, err := decodeObject(w, r)
	if err != nil {
		writeError(w, s.logger, MsgSaveFailed, err)
		return
	}

	email := identity(r)
	info := &models.PersonalInfo{
		Email:     email,
		Timestamp: s.timestamp(),
		Fields:    make(map[string]models.Value, len(body)),
	}
	for key, raw := range body {
		if models.IsReservedPersonalKey(key) {
			continue
		}
		v, ok := models.ValueOf(raw)
		if !ok {
			s.logger.Debug("Dropping non-scalar field", "email", email, "field", key)
			continue
		}
		info.Fields[key] = v
	}

	if err := s.store.AppendPersonalInfo(r.Context(), info); err != nil {
		writeError(w, s.logger, MsgSaveFailed, err)
		return
	}
	s.metrics.RecordSaved(storage.PersonalInfoCollection, "insert")

	s.logger.Info("Personal info saved", "email", email, "id", info.ID, "fields", len(info.Fields))
	respond.JSON(w, http.StatusOK, savedResponse{Mensaje: MsgPersonalSaved, ID: info.ID})
}

// ListPersonalInfo returns the caller's personal-info records.
func (s *FinanceService) ListPersonalInfo(w http.ResponseWriter, r *http.Request) {
	infos, err := s.store.ListPersonalInfo(r.Context(), identity(r))
	if err != nil {
		writeError(w, s.logger, MsgFetchFailed, err)
		return
	}
	if infos == nil {
		infos = []*models.PersonalInfo{}
	}
	respond.JSON(w, http.StatusOK, infos)
}

// ListAllPersonalInfo returns every personal-info record of every owner.
func (s *FinanceService) ListAllPersonalInfo(w http.ResponseWriter, r *http.Request) {
	infos, err := s.store.ListAllPersonalInfo(r.Context())
	if err != nil {
		writeError(w, s.logger, MsgFetchFailed, err)
		return
	}
	if infos == nil {
		infos = []*models.PersonalInfo{}
	}
	respond.JSON(w, http.StatusOK, allPersonalInfoResponse{TotalRegistros: len(infos), Personas: infos})
}

// SaveFinancialInfo coerces the submitted figures, derives the totals and
// upserts the caller's financial record.
func (s *FinanceService) SaveFinancialInfo(w http.ResponseWriter, r *http.Request) {
	body, err := decodeObject(w, r)
	if err != nil {
		writeError(w, s.logger, MsgSaveFailed, err)
		return
	}

	in := calculator.ExpenseInput{
		Ingreso:      calculator.ToFloat(body["ingreso"]),
		ArriendoHipo: calculator.ToFloat(body["arriendoHipo"]),
		Services:     calculator.ToFloat(body["services"]),
		Alimentacion: calculator.ToFloat(body["alimentacion"]),
		Transporte:   calculator.ToFloat(body["transporte"]),
		Otros:        calculator.ToFloat(body["otros"]),
	}
	totals := calculator.ComputeExpenseSummary(in)
	summary := models.ExpenseSummary{
		Ingreso:      in.Ingreso,
		ArriendoHipo: in.ArriendoHipo,
		Services:     in.Services,
		Alimentacion: in.Alimentacion,
		Transporte:   in.Transporte,
		Otros:        in.Otros,
		TotalGastos:  totals.TotalGastos,
		Disponible:   totals.Disponible,
	}
	source := incomeSource(body)
	ts := s.timestamp()

	email := identity(r)
	rec, created, err := s.store.SaveFinancialInfo(r.Context(), email, func(rec *models.FinancialRecord) {
		rec.Timestamp = ts
		rec.FuenteIngreso = source
		rec.Gastos = &summary
	})
	if err != nil {
		writeError(w, s.logger, MsgSaveFailed, err)
		return
	}

	op := "update"
	if created {
		op = "insert"
	}
	s.metrics.RecordSaved(storage.FinancialInfoCollection, op)

	s.logger.Info("Financial info saved", "email", email, "id", rec.ID, "op", op,
		"total_gastos", summary.TotalGastos, "disponible", summary.Disponible)
	respond.JSON(w, http.StatusOK, financialSavedResponse{
		Mensaje: MsgFinancialSaved,
		Gastos:  financialSummary{ExpenseSummary: summary, FuenteIngreso: source},
	})
}

// GetFinancialInfo returns the caller's latest financial summary, or a zero
// summary with an empty label if nothing was saved yet. Labels missing from
// stored records read as models.DefaultIncomeSource.
func (s *FinanceService) GetFinancialInfo(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.GetLatestFinancialInfo(r.Context(), identity(r))
	if err != nil {
		writeError(w, s.logger, MsgFetchFailed, err)
		return
	}

	var summary financialSummary
	if rec != nil && rec.Gastos != nil {
		summary.ExpenseSummary = *rec.Gastos
		summary.FuenteIngreso = rec.FuenteIngreso
	}

	respond.JSON(w, http.StatusOK, financialInfoResponse{
		financialSummary: summary,
		Categorias:       models.ExpenseCategories,
		Valores:          summary.Values(),
	})
}

// incomeSource returns the first present, non-null income label in its text
// form, or DefaultIncomeSource.
func incomeSource(body map[string]any) string {
	for _, key := range incomeSourceKeys {
		if v, ok := body[key]; ok && v != nil {
			return fmt.Sprint(v)
		}
	}
	return models.DefaultIncomeSource
}
