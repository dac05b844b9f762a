package worker

// Processes closing-report jobs from QueueCierreCaja: renders the
// arqueo summary as a PDF and mails it to the configured recipient.
// SMTP sends go through the circuit breaker so a downed mail server
// does not stall the pool.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pizzapos/internal/caja"
	"pizzapos/internal/infra"

	"github.com/rs/zerolog/log"
)

// CierreCajaPayload is the job envelope sent to QueueCierreCaja.
type CierreCajaPayload struct {
	SesionID string      `json:"sesion_id"`
	OpenedAt time.Time   `json:"opened_at"`
	ClosedAt time.Time   `json:"closed_at"`
	Cierre   caja.Cierre `json:"cierre"`
}

// CierreCajaWorker generates the closing-report PDF and emails it.
type CierreCajaWorker struct {
	mailer         *infra.Mailer
	cb             *infra.CircuitBreaker
	pdfStoragePath string
	destinatario   string
}

func NewCierreCajaWorker(mailer *infra.Mailer, cb *infra.CircuitBreaker, pdfStoragePath, destinatario string) *CierreCajaWorker {
	return &CierreCajaWorker{
		mailer:         mailer,
		cb:             cb,
		pdfStoragePath: pdfStoragePath,
		destinatario:   destinatario,
	}
}

// Process handles a single closing-report job:
//  1. Parse CierreCajaPayload from the job envelope
//  2. Render the PDF summary to pdfStoragePath
//  3. Email it to the configured recipient through the circuit breaker
func (w *CierreCajaWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload CierreCajaPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("cierre_caja_worker: invalid payload")
		// Unparseable payloads never succeed on replay; drop them.
		return nil
	}

	pdfPath, err := infra.GenerateCierrePDF(infra.CierreReporte{
		SesionID: payload.SesionID,
		OpenedAt: payload.OpenedAt,
		ClosedAt: payload.ClosedAt,
		Cierre:   payload.Cierre,
	}, w.pdfStoragePath)
	if err != nil {
		log.Error().Err(err).Str("sesion_id", payload.SesionID).Msg("cierre_caja_worker: pdf generation failed")
		return err
	}

	if w.destinatario == "" {
		log.Info().Str("pdf", pdfPath).Msg("cierre_caja_worker: no recipient configured, pdf kept on disk")
		return nil
	}

	subject := fmt.Sprintf("Cierre de caja %s", payload.ClosedAt.Format("02/01/2006 15:04"))
	body := fmt.Sprintf(
		"Sesion %s\nApertura: %s\nCierre: %s\nTotal final: %s\nEfectivo en caja: %s\n",
		payload.SesionID,
		payload.OpenedAt.Format("02/01/2006 15:04"),
		payload.ClosedAt.Format("02/01/2006 15:04"),
		caja.FormatoSigno(payload.Cierre.TotalFinal),
		caja.FormatoSigno(payload.Cierre.EfectivoDisponible),
	)

	sendErr := w.cb.Execute(func() error {
		return w.mailer.SendReporte(w.destinatario, subject, body, pdfPath)
	})
	if sendErr != nil {
		log.Error().Err(sendErr).Str("to", w.destinatario).Msg("cierre_caja_worker: failed to send report")
		return sendErr
	}

	log.Info().Str("to", w.destinatario).Str("sesion_id", payload.SesionID).Msg("cierre_caja_worker: report sent")
	return nil
}
