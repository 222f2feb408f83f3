package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/abhishek972986/porter-managment/internal/apierror"
	"github.com/abhishek972986/porter-managment/internal/dates"
	"github.com/abhishek972986/porter-managment/internal/dto"
	"github.com/abhishek972986/porter-managment/internal/infra"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog/log"
)

// PDFRenderer turns a complete HTML document into PDF bytes.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}

type DocumentService interface {
	Generate(ctx context.Context, req dto.GenerateDocumentRequest) ([]byte, string, error)
	Health(ctx context.Context) (*dto.DocumentHealthResponse, bool)
}

type documentService struct {
	templatePath string
	renderer     PDFRenderer
	breaker      *infra.CircuitBreaker
	sanitizer    *bluemonday.Policy
	now          func() time.Time
}

func NewDocumentService(templatePath string, renderer PDFRenderer, breaker *infra.CircuitBreaker) DocumentService {
	if breaker == nil {
		breaker = infra.NewCircuitBreaker(infra.DefaultCBConfig())
	}
	return &documentService{
		templatePath: templatePath,
		renderer:     renderer,
		breaker:      breaker,
		sanitizer:    bluemonday.StrictPolicy(),
		now:          time.Now,
	}
}

var slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)

func slug(s string) string {
	s = slugInvalid.ReplaceAllString(strings.ToLower(s), "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "document"
	}
	return s
}

// fill substitutes every placeholder literally. Values are stripped of
// markup first so user input cannot inject HTML into the document.
func (s *documentService) fill(template string, req dto.GenerateDocumentRequest, date string) string {
	clean := s.sanitizer.Sanitize
	unit := clean(req.UnitName)
	r := strings.NewReplacer(
		"{{brigade}}", clean(req.Brigade),
		"{{unitName}}", unit,
		"{{unit_name}}", unit,
		"{{financialYear}}", clean(req.FinancialYear),
		"{{brigadeName}}", clean(req.BrigadeName),
		"{{letterNo}}", clean(req.LetterNo),
		"{{date}}", date,
		"{{remarks}}", clean(req.Remarks),
	)
	return r.Replace(template)
}

func (s *documentService) Generate(ctx context.Context, req dto.GenerateDocumentRequest) ([]byte, string, error) {
	day, err := dates.ParseDay(req.Date)
	if err != nil {
		return nil, "", invalidDate("date", err)
	}

	raw, err := os.ReadFile(s.templatePath)
	if err != nil {
		log.Error().Err(err).Str("template", s.templatePath).Msg("document template unreadable")
		return nil, "", apierror.Unavailable("document template is not available")
	}

	html := s.fill(string(raw), req, day.Format("02/01/2006"))

	var pdf []byte
	err = s.breaker.Do(ctx, func(ctx context.Context) error {
		var renderErr error
		pdf, renderErr = s.renderer.RenderPDF(ctx, html)
		return renderErr
	})
	if errors.Is(err, infra.ErrCircuitOpen) {
		return nil, "", apierror.Unavailable("pdf renderer is temporarily unavailable")
	}
	if err != nil && errors.Is(ctx.Err(), context.Canceled) {
		log.Debug().Err(err).Msg("pdf render abandoned by client")
		return nil, "", err
	}
	if err != nil {
		log.Error().Err(err).Str("breaker", s.breaker.State().String()).Msg("pdf render failed")
		return nil, "", apierror.Internal(err)
	}

	name := fmt.Sprintf("document-%s-%d.pdf", slug(req.UnitName), s.now().UnixMilli())
	return pdf, name, nil
}

// Health reports whether the template can be read. The bool is false when
// document generation cannot succeed.
func (s *documentService) Health(_ context.Context) (*dto.DocumentHealthResponse, bool) {
	resp := &dto.DocumentHealthResponse{
		Template:      s.templatePath,
		RendererState: s.breaker.State().String(),
	}
	f, err := os.Open(s.templatePath)
	if err == nil {
		_ = f.Close()
		resp.TemplateOK = true
	}
	return resp, resp.TemplateOK
}
