package notification

import (
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/dailysutra/core"
)

func TestPreferencesValidate(t *testing.T) {
	validate := validator.New()
	enLocale := en.New()
	translator, _ := ut.New(enLocale, enLocale).GetTranslator("en")
	core.InitValidators(validate, translator)

	tests := []struct {
		name    string
		mutate  func(p *Preferences)
		wantErr bool
	}{
		{name: "defaults", mutate: func(p *Preferences) {}},
		{name: "no days", mutate: func(p *Preferences) { p.ReminderDays = nil }},
		{name: "bad time", mutate: func(p *Preferences) { p.ReminderTime = "25:00" }, wantErr: true},
		{name: "time without padding", mutate: func(p *Preferences) { p.ReminderTime = "9:00" }, wantErr: true},
		{name: "bad day", mutate: func(p *Preferences) { p.ReminderDays = []int{7} }, wantErr: true},
		{name: "bad timezone", mutate: func(p *Preferences) { p.Timezone = "Mars/Olympus" }, wantErr: true},
		{name: "local timezone", mutate: func(p *Preferences) { p.Timezone = "Local" }, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultPreferences("u1")
			tc.mutate(&p)
			err := p.Validate(validate)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, p.ReminderDays)
			}
		})
	}
}
