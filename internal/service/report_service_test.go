package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ailyedu2030/cet4-gateway/internal/models"
	appErrors "github.com/ailyedu2030/cet4-gateway/pkg/errors"
)

func TestReportServiceExportCSV(t *testing.T) {
	gateway := &fakeClassroomGateway{
		items: []models.Classroom{
			{ID: 1, Name: "多媒体教室101", BuildingName: "教学楼A", Capacity: 60, IsAvailable: true},
			{ID: 2, Name: "语音室202", BuildingName: "教学楼B", Capacity: 40},
		},
		total: 2,
	}
	svc := NewReportService(newCachedClassroomService(gateway, nil), nil)

	report, err := svc.ExportClassroomUsage(context.Background(), "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", report.ContentType)
	assert.True(t, strings.HasSuffix(report.FileName, ".csv"))

	body := string(report.Content)
	assert.Contains(t, body, "ID,Name,Building,Capacity,Available")
	assert.Contains(t, body, "多媒体教室101")
	assert.Contains(t, body, "教学楼B")
}

func TestReportServiceExportPDF(t *testing.T) {
	gateway := &fakeClassroomGateway{
		items: []models.Classroom{{ID: 1, Name: "Room 101", BuildingName: "Block A", Capacity: 30}},
		total: 1,
	}
	svc := NewReportService(newCachedClassroomService(gateway, nil), nil)

	report, err := svc.ExportClassroomUsage(context.Background(), "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", report.ContentType)
	assert.NotEmpty(t, report.Content)
}

func TestReportServiceRejectsUnknownFormat(t *testing.T) {
	svc := NewReportService(newCachedClassroomService(&fakeClassroomGateway{}, nil), nil)

	_, err := svc.ExportClassroomUsage(context.Background(), "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
