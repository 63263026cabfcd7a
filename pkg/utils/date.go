package utils

import (
	"fmt"
	"strings"
	"time"
)

// ParseDate converte uma data no formato YYYY-MM-DD. Qualquer componente de
// horário recebido é truncado antes do parse para evitar deslocamento de dia
// entre fusos horários dos clientes.
func ParseDate(dateStr string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return time.Time{}, fmt.Errorf("data vazia")
	}

	// Aceita "2006-01-02T15:04:05Z" e variantes, usando apenas a parte da data
	if idx := strings.IndexAny(dateStr, "T "); idx > 0 {
		dateStr = dateStr[:idx]
	}

	date, err := time.Parse(time.DateOnly, dateStr)
	if err != nil {
		return time.Time{}, err
	}

	return date, nil
}

// ParseDates converte uma lista de datas no formato YYYY-MM-DD
func ParseDates(dateStrs []string) ([]time.Time, error) {
	if len(dateStrs) == 0 {
		return nil, nil
	}

	dates := make([]time.Time, 0, len(dateStrs))
	for _, s := range dateStrs {
		date, err := ParseDate(s)
		if err != nil {
			return nil, fmt.Errorf("data inválida %q: %w", s, err)
		}
		dates = append(dates, date)
	}

	return dates, nil
}

// TruncateToDate remove o componente de horário de um instante
func TruncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDate formata uma data no formato YYYY-MM-DD usado na API
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}
