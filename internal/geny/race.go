package geny

import (
	"errors"
	"fmt"

	"genyscrape/lib/telemetry"

	"github.com/PuerkitoBio/goquery"
)

const (
	report_race_date       = "race.date"
	report_race_hour       = "race.hour"
	report_race_venue      = "race.venue"
	report_race_reunion    = "race.reunion"
	report_race_discipline = "race.discipline"
)

// soft reports a field that failed to extract, absent markup is expected on some
// pages so it is only worth a debug line.
func soft(tel telemetry.API, id string, url string, err error) {
	if errors.Is(err, ErrNotFound) {
		tel.ReportDebug(id, "url", url, "err", err)
		return
	}
	tel.ReportWarning(id, "url", url, "err", err)
}

// ParseRaceMetadata reads a "partants/stats/prono" page. The race number and
// runner count are required, failing to read either of them drops the record.
func ParseRaceMetadata(url string, doc *goquery.Document, tel telemetry.API) (RaceMetadataRecord, error) {
	key, err := RaceKey(url)
	if err != nil {
		return RaceMetadataRecord{}, err
	}
	record := RaceMetadataRecord{Key: key}

	record.Date, err = RaceDate(url)
	if err != nil {
		soft(tel, report_race_date, url, err)
	}
	record.Hour, err = ExtractHour(doc)
	if err != nil {
		soft(tel, report_race_hour, url, err)
	}
	record.Venue, err = ExtractVenue(doc)
	if err != nil {
		soft(tel, report_race_venue, url, err)
	}
	record.Reunion, err = ExtractReunion(doc)
	if err != nil {
		soft(tel, report_race_reunion, url, err)
	}
	record.Discipline, err = ExtractDiscipline(doc)
	if err != nil {
		soft(tel, report_race_discipline, url, err)
	}

	record.RaceNumber, err = ExtractRaceNumber(doc)
	if err != nil {
		return RaceMetadataRecord{}, fmt.Errorf("race %s: %w", key, err)
	}
	record.Runners, err = ExtractRunners(doc)
	if err != nil {
		return RaceMetadataRecord{}, fmt.Errorf("race %s: %w", key, err)
	}

	return record, nil
}
