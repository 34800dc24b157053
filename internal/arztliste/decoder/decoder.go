// Package decoder maps the practice JSON export onto the domain model.
package decoder

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/medflow/arztliste/internal/arztliste/domain"
	"github.com/tailscale/hujson"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// Decode reads a whole export and returns its doctors in source order.
// Year-less day strings are placed in the given year.
//
// Unknown fields are ignored, trailing commas and comments are accepted, and
// NaN, Infinity and -Infinity literals read as null. Contact and address fields
// take numbers and booleans as their literal text. Any other malformed
// structure, date, time or consultation type label fails the whole decode.
func Decode(r io.Reader, year int) ([]domain.Doctor, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}
	return DecodeBytes(raw, year)
}

// DecodeBytes is Decode for an in-memory export
func DecodeBytes(raw []byte, year int) ([]domain.Doctor, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)

	ast, err := hujson.Parse(replaceSpecialFloats(raw))
	if err != nil {
		return nil, fmt.Errorf("parse export: %w", err)
	}
	ast.Standardize()
	standard := ast.Pack()

	var list doctorListDTO
	if err := json.Unmarshal(standard, &list); err != nil {
		return nil, fmt.Errorf("decode export: %w", err)
	}

	doctors := make([]domain.Doctor, 0, len(list.ArztPraxisDatas))
	for i, dto := range list.ArztPraxisDatas {
		doctor, err := mapDoctor(dto, year)
		if err != nil {
			return nil, fmt.Errorf("doctor #%d (%q): %w", i+1, dto.Name, err)
		}
		doctors = append(doctors, doctor)
	}
	return doctors, nil
}

func mapDoctor(dto doctorDTO, year int) (domain.Doctor, error) {
	doctor := domain.Doctor{
		Name: string(dto.Name),
		Contact: domain.ContactData{
			Phone:  string(dto.Tel),
			Email:  string(dto.Email),
			Mobile: string(dto.Handy),
		},
		Address: domain.Address{
			Street:       string(dto.Strasse),
			StreetNumber: string(dto.Hausnummer),
			ZipCode:      string(dto.PLZ),
			City:         string(dto.Ort),
		},
	}

	for _, dayDTO := range dto.TSZ {
		// Days without any type listing carry no consultation hours
		if len(dayDTO.TSZDesTyps) == 0 {
			continue
		}

		day, err := mapDay(dayDTO, year)
		if err != nil {
			return domain.Doctor{}, fmt.Errorf("day %q: %w", dayDTO.D, err)
		}
		doctor.Days = append(doctor.Days, day)
	}

	return doctor, nil
}

func mapDay(dto consultationDayDTO, year int) (domain.ConsultationDay, error) {
	date, err := ParseDay(dto.D, year)
	if err != nil {
		return domain.ConsultationDay{}, err
	}

	day := domain.ConsultationDay{
		Date:  date,
		Hours: make([]domain.ConsultationHours, 0, len(dto.TSZDesTyps)),
	}
	for _, typeDTO := range dto.TSZDesTyps {
		typ, err := domain.ParseConsultationType(typeDTO.Typ)
		if err != nil {
			return domain.ConsultationDay{}, err
		}

		hours := domain.ConsultationHours{
			Type:  typ,
			Times: make([]domain.TimeFrame, 0, len(typeDTO.Sprechzeiten)),
		}
		for _, tf := range typeDTO.Sprechzeiten {
			frame, err := ParseTimeFrame(tf.Zeit)
			if err != nil {
				return domain.ConsultationDay{}, err
			}
			hours.Times = append(hours.Times, frame)
		}
		day.Hours = append(day.Hours, hours)
	}

	return day, nil
}
