package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "CET4 Admin Gateway",
        "description": "Admin gateway for the CET4 learning platform core API",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Classrooms", "description": "Classroom inventory and bookings"},
        {"name": "Conflicts", "description": "Booking-dialog conflict check workflow"},
        {"name": "Registrations", "description": "Student registration review queue"},
        {"name": "Notifications", "description": "Notification feed and dispatch"},
        {"name": "Workshops", "description": "Training workshop configuration"}
    ],
    "paths": {
        "/classrooms": {
            "get": {
                "tags": ["Classrooms"],
                "summary": "List classrooms",
                "parameters": [
                    {"name": "buildingId", "in": "query", "type": "integer"},
                    {"name": "available", "in": "query", "type": "boolean"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classrooms/time-presets": {
            "get": {
                "tags": ["Classrooms"],
                "summary": "List booking time presets",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classrooms/check-conflict": {
            "post": {
                "tags": ["Classrooms"],
                "summary": "One-shot conflict check for a time range",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ConflictCheckRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classrooms/schedules": {
            "post": {
                "tags": ["Classrooms"],
                "summary": "Book a classroom slot directly",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateScheduleRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classrooms/usage-report": {
            "get": {
                "tags": ["Classrooms"],
                "summary": "Export classroom usage report",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/classrooms/{id}/conflict-sessions": {
            "post": {
                "tags": ["Conflicts"],
                "summary": "Open a conflict-check session",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/conflict-sessions/{sid}": {
            "get": {
                "tags": ["Conflicts"],
                "summary": "Report whether a session can confirm",
                "parameters": [
                    {"name": "sid", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Conflicts"],
                "summary": "Update the session form",
                "parameters": [
                    {"name": "sid", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ConflictFormUpdate"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Conflicts"],
                "summary": "Discard a session",
                "parameters": [
                    {"name": "sid", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/conflict-sessions/{sid}/check": {
            "post": {
                "tags": ["Conflicts"],
                "summary": "Run the conflict probe",
                "parameters": [
                    {"name": "sid", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/conflict-sessions/{sid}/confirm": {
            "post": {
                "tags": ["Conflicts"],
                "summary": "Confirm the booking held by a clean session",
                "parameters": [
                    {"name": "sid", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ConfirmRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/registrations": {
            "get": {
                "tags": ["Registrations"],
                "summary": "List registration applications",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/registrations/{id}/review": {
            "post": {
                "tags": ["Registrations"],
                "summary": "Review a single application",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReviewRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/registrations/batch-review": {
            "post": {
                "tags": ["Registrations"],
                "summary": "Review up to 20 applications at once",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BatchReviewRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notifications": {
            "get": {
                "tags": ["Notifications"],
                "summary": "List notifications",
                "parameters": [
                    {"name": "unread", "in": "query", "type": "boolean"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Notifications"],
                "summary": "Queue a notification for delivery",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SendNotificationRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notifications/{id}/read": {
            "post": {
                "tags": ["Notifications"],
                "summary": "Mark a notification as read",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/workshops/config": {
            "get": {
                "tags": ["Workshops"],
                "summary": "Get workshop stage configuration",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Workshops"],
                "summary": "Replace workshop stage configuration",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/WorkshopConfig"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "ConflictCheckRequest": {
            "type": "object",
            "properties": {
                "classroom_id": {"type": "integer"},
                "start_time": {"type": "string", "format": "date-time"},
                "end_time": {"type": "string", "format": "date-time"},
                "exclude_schedule_id": {"type": "integer"},
                "repeat_type": {"type": "string", "enum": ["none", "daily", "weekly", "monthly"]},
                "repeat_end_date": {"type": "string", "format": "date-time"},
                "repeat_days": {"type": "array", "items": {"type": "integer"}}
            },
            "required": ["classroom_id", "start_time", "end_time"]
        },
        "ConflictFormUpdate": {
            "type": "object",
            "properties": {
                "preset_label": {"type": "string"},
                "start_time": {"type": "string", "format": "date-time"},
                "end_time": {"type": "string", "format": "date-time"},
                "repeat_type": {"type": "string"},
                "repeat_end_date": {"type": "string", "format": "date-time"},
                "repeat_days": {"type": "array", "items": {"type": "integer"}},
                "exclude_schedule_id": {"type": "integer"}
            }
        },
        "CreateScheduleRequest": {
            "type": "object",
            "properties": {
                "classroom_id": {"type": "integer"},
                "title": {"type": "string"},
                "teacher_name": {"type": "string"},
                "start_time": {"type": "string", "format": "date-time"},
                "end_time": {"type": "string", "format": "date-time"},
                "repeat_type": {"type": "string", "enum": ["none", "daily", "weekly", "monthly"]},
                "repeat_end_date": {"type": "string", "format": "date-time"},
                "repeat_days": {"type": "array", "items": {"type": "integer"}}
            },
            "required": ["classroom_id", "title", "start_time", "end_time"]
        },
        "ConfirmRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "teacher_name": {"type": "string"}
            },
            "required": ["title"]
        },
        "ReviewRequest": {
            "type": "object",
            "properties": {
                "approved": {"type": "boolean"},
                "comment": {"type": "string"}
            }
        },
        "BatchReviewRequest": {
            "type": "object",
            "properties": {
                "application_ids": {"type": "array", "items": {"type": "integer"}},
                "approved": {"type": "boolean"},
                "comment": {"type": "string"}
            },
            "required": ["application_ids"]
        },
        "SendNotificationRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "content": {"type": "string"},
                "channel": {"type": "string", "enum": ["in_app", "email", "sms"]},
                "recipient_ids": {"type": "array", "items": {"type": "integer"}},
                "application_ids": {"type": "array", "items": {"type": "integer"}}
            },
            "required": ["title", "content", "channel"]
        },
        "WorkshopConfig": {
            "type": "object",
            "properties": {
                "stages": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/WorkshopStage"}
                }
            }
        },
        "WorkshopStage": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "percent": {"type": "integer"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
