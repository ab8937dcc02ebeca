package services

// Services defined in this package:
// - AuthService: login, token refresh and password management
// - SyncService: assignment carry-over between subjects
// - VisibilityService: role/subject-scoped student resolution for staff
// - MarksService: validated partial marks updates
// - AssignmentService: named-field writes with reference checks
// - StudentService: student lifecycle, archiving and document uploads
// - StaffService: staff account management
// - CompanyService: company directory
// - RubricService: rubric files and built-in templates
// - ImportService: workbook bulk imports
// - AuditService: audit trail reads
// - DashboardService: summary tiles
