package departments

import (
	"testing"

	"github.com/tantrafest/tantra/internal/domain/models"
)

func TestToContentDept(t *testing.T) {
	d := models.Department{ID: "d1", Name: "CSE", Description: "<b>Core</b>", QRURL: "/qr.png"}
	evs := []models.Event{{ID: "1", Name: "Hackathon", Status: models.StatusOpen}}
	cd := toContentDept(d, evs)
	if string(cd.Description) != "<b>Core</b>" {
		t.Errorf("Description = %q", cd.Description)
	}
	if len(cd.Events) != 1 || cd.Events[0].Name != "Hackathon" || !cd.Events[0].Status.Open {
		t.Errorf("Events = %+v", cd.Events)
	}
}
