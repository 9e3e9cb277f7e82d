package usecase

import "ishara/internal/domain/entity"

// MatchAppointments joins appointments with directory records by translator
// id. Every appointment yields exactly one result, in the input order; the
// Translator field is nil when the directory no longer has a record for that
// id, and consumers render an "unavailable" placeholder instead of failing.
func MatchAppointments(appointments []*entity.Appointment, translators []*entity.Translator) []*entity.AppointmentWithTranslator {
	byID := make(map[string]*entity.Translator, len(translators))
	for _, t := range translators {
		byID[t.ID] = t
	}

	matched := make([]*entity.AppointmentWithTranslator, 0, len(appointments))
	for _, a := range appointments {
		matched = append(matched, &entity.AppointmentWithTranslator{
			Appointment: a,
			Translator:  byID[a.TranslatorID],
		})
	}
	return matched
}
