package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	sharedDomain "github.com/felixgeelhaar/studora/internal/shared/domain"
	sharedPersistence "github.com/felixgeelhaar/studora/internal/shared/infrastructure/persistence"
	"github.com/felixgeelhaar/studora/internal/timetable/domain"
)

// SQLiteEntryRepository implements domain.EntryRepository using SQLite (local mode).
type SQLiteEntryRepository struct {
	db *sql.DB
}

// NewSQLiteEntryRepository creates a new SQLite entry repository.
func NewSQLiteEntryRepository(db *sql.DB) *SQLiteEntryRepository {
	return &SQLiteEntryRepository{db: db}
}

// CreateSQLiteTimetableSchema creates the timetable tables for local mode.
// Day and exclusion lists are stored as JSON text.
func CreateSQLiteTimetableSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS timetable_entries (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			course_name TEXT NOT NULL,
			course_code TEXT,
			instructor TEXT,
			room TEXT,
			days_of_week TEXT NOT NULL,
			start_time TEXT NOT NULL,
			end_time TEXT NOT NULL,
			semester_start TEXT,
			semester_end TEXT,
			color TEXT,
			category TEXT,
			excluded_dates TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_timetable_user ON timetable_entries(user_id);

		CREATE TABLE IF NOT EXISTS attendance_records (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			course_name TEXT NOT NULL,
			date TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'present',
			note TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_attendance_user ON attendance_records(user_id);
		CREATE INDEX IF NOT EXISTS idx_attendance_user_course ON attendance_records(user_id, course_name);
	`)
	return err
}

const sqliteEntryColumns = `id, user_id, course_name, course_code, instructor, room,
       days_of_week, start_time, end_time, semester_start, semester_end,
       color, category, excluded_dates, created_at, updated_at`

// Save persists a timetable entry to the database.
func (r *SQLiteEntryRepository) Save(ctx context.Context, entry *domain.TimetableEntry) error {
	days, err := json.Marshal(entry.DaysOfWeek())
	if err != nil {
		return err
	}
	excluded, err := json.Marshal(entry.ExcludedDates())
	if err != nil {
		return err
	}

	q := sharedPersistence.SQLiteExecutor(ctx, r.db)
	_, err = q.ExecContext(ctx, `
		INSERT INTO timetable_entries (
			id, user_id, course_name, course_code, instructor, room,
			days_of_week, start_time, end_time, semester_start, semester_end,
			color, category, excluded_dates, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			course_name = excluded.course_name,
			course_code = excluded.course_code,
			instructor = excluded.instructor,
			room = excluded.room,
			days_of_week = excluded.days_of_week,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			semester_start = excluded.semester_start,
			semester_end = excluded.semester_end,
			color = excluded.color,
			category = excluded.category,
			excluded_dates = excluded.excluded_dates,
			updated_at = excluded.updated_at
	`,
		entry.ID().String(),
		entry.UserID().String(),
		entry.CourseName(),
		nullString(entry.CourseCode()),
		nullString(entry.Instructor()),
		nullString(entry.Room()),
		string(days),
		entry.StartTime(),
		entry.EndTime(),
		nullTime(entry.SemesterStart()),
		nullTime(entry.SemesterEnd()),
		nullString(entry.Color()),
		nullString(entry.Category()),
		string(excluded),
		entry.CreatedAt().Format(time.RFC3339Nano),
		entry.UpdatedAt().Format(time.RFC3339Nano),
	)
	return err
}

// FindByID retrieves a timetable entry by its ID.
func (r *SQLiteEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.TimetableEntry, error) {
	q := sharedPersistence.SQLiteExecutor(ctx, r.db)
	row := q.QueryRowContext(ctx, `SELECT `+sqliteEntryColumns+` FROM timetable_entries WHERE id = ?`, id.String())

	entry, err := scanSQLiteEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return entry, nil
}

// FindByUserID retrieves all timetable entries for a user.
func (r *SQLiteEntryRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.TimetableEntry, error) {
	q := sharedPersistence.SQLiteExecutor(ctx, r.db)
	rows, err := q.QueryContext(ctx, `SELECT `+sqliteEntryColumns+` FROM timetable_entries WHERE user_id = ? ORDER BY course_name`, userID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.TimetableEntry
	for rows.Next() {
		entry, err := scanSQLiteEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Delete removes a timetable entry from the database.
func (r *SQLiteEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	q := sharedPersistence.SQLiteExecutor(ctx, r.db)
	res, err := q.ExecContext(ctx, `DELETE FROM timetable_entries WHERE id = ?`, id.String())
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteEntry(row rowScanner) (*domain.TimetableEntry, error) {
	var (
		idStr, userIDStr           string
		courseName                 string
		courseCode, instructor     sql.NullString
		room                       sql.NullString
		daysJSON                   string
		startTime, endTime         string
		semesterStart, semesterEnd sql.NullString
		color, category            sql.NullString
		excludedJSON               sql.NullString
		createdAtStr, updatedAtStr string
	)
	err := row.Scan(&idStr, &userIDStr, &courseName, &courseCode, &instructor, &room,
		&daysJSON, &startTime, &endTime, &semesterStart, &semesterEnd,
		&color, &category, &excludedJSON, &createdAtStr, &updatedAtStr)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, err
	}
	createdAt, err := time.Parse(time.RFC3339Nano, createdAtStr)
	if err != nil {
		return nil, err
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, updatedAtStr)
	if err != nil {
		return nil, err
	}
	semStart, err := parseNullTime(semesterStart)
	if err != nil {
		return nil, err
	}
	semEnd, err := parseNullTime(semesterEnd)
	if err != nil {
		return nil, err
	}

	var days []int
	if err := json.Unmarshal([]byte(daysJSON), &days); err != nil {
		return nil, err
	}
	var excluded []string
	if excludedJSON.Valid && excludedJSON.String != "" {
		if err := json.Unmarshal([]byte(excludedJSON.String), &excluded); err != nil {
			return nil, err
		}
	}

	return domain.RehydrateTimetableEntry(
		sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt),
		userID, courseName, courseCode.String, instructor.String, room.String,
		days, startTime, endTime, semStart, semEnd,
		color.String, category.String, excluded,
	), nil
}

// SQLiteAttendanceRepository implements domain.AttendanceRepository using SQLite (local mode).
type SQLiteAttendanceRepository struct {
	db *sql.DB
}

// NewSQLiteAttendanceRepository creates a new SQLite attendance repository.
func NewSQLiteAttendanceRepository(db *sql.DB) *SQLiteAttendanceRepository {
	return &SQLiteAttendanceRepository{db: db}
}

const sqliteAttendanceColumns = `id, user_id, course_name, date, status, note, created_at, updated_at`

// Save persists an attendance record to the database.
func (r *SQLiteAttendanceRepository) Save(ctx context.Context, record *domain.AttendanceRecord) error {
	q := sharedPersistence.SQLiteExecutor(ctx, r.db)
	_, err := q.ExecContext(ctx, `
		INSERT INTO attendance_records (
			id, user_id, course_name, date, status, note, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			course_name = excluded.course_name,
			date = excluded.date,
			status = excluded.status,
			note = excluded.note,
			updated_at = excluded.updated_at
	`,
		record.ID().String(),
		record.UserID().String(),
		record.CourseName(),
		record.Date().Format(time.RFC3339Nano),
		string(record.Status()),
		nullString(record.Note()),
		record.CreatedAt().Format(time.RFC3339Nano),
		record.UpdatedAt().Format(time.RFC3339Nano),
	)
	return err
}

// FindByID retrieves an attendance record by its ID.
func (r *SQLiteAttendanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.AttendanceRecord, error) {
	q := sharedPersistence.SQLiteExecutor(ctx, r.db)
	row := q.QueryRowContext(ctx, `SELECT `+sqliteAttendanceColumns+` FROM attendance_records WHERE id = ?`, id.String())

	record, err := scanSQLiteAttendance(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAttendanceNotFound
		}
		return nil, err
	}
	return record, nil
}

// FindByUserID retrieves all attendance records for a user.
func (r *SQLiteAttendanceRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.AttendanceRecord, error) {
	return r.findMany(ctx, `SELECT `+sqliteAttendanceColumns+` FROM attendance_records WHERE user_id = ? ORDER BY date DESC`, userID.String())
}

// FindByCourse retrieves a user's attendance records for one course.
func (r *SQLiteAttendanceRepository) FindByCourse(ctx context.Context, userID uuid.UUID, courseName string) ([]*domain.AttendanceRecord, error) {
	return r.findMany(ctx, `SELECT `+sqliteAttendanceColumns+` FROM attendance_records WHERE user_id = ? AND course_name = ? ORDER BY date DESC`, userID.String(), courseName)
}

// FindByDateRange retrieves a user's attendance records within [from, to).
func (r *SQLiteAttendanceRepository) FindByDateRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*domain.AttendanceRecord, error) {
	return r.findMany(ctx,
		`SELECT `+sqliteAttendanceColumns+` FROM attendance_records WHERE user_id = ? AND date >= ? AND date < ? ORDER BY date DESC`,
		userID.String(), from.Format(time.RFC3339Nano), to.Format(time.RFC3339Nano))
}

// Delete removes an attendance record from the database.
func (r *SQLiteAttendanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	q := sharedPersistence.SQLiteExecutor(ctx, r.db)
	res, err := q.ExecContext(ctx, `DELETE FROM attendance_records WHERE id = ?`, id.String())
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAttendanceNotFound
	}
	return nil
}

func (r *SQLiteAttendanceRepository) findMany(ctx context.Context, query string, args ...any) ([]*domain.AttendanceRecord, error) {
	q := sharedPersistence.SQLiteExecutor(ctx, r.db)
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*domain.AttendanceRecord
	for rows.Next() {
		record, err := scanSQLiteAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func scanSQLiteAttendance(row rowScanner) (*domain.AttendanceRecord, error) {
	var (
		idStr, userIDStr           string
		courseName, dateStr        string
		status                     string
		note                       sql.NullString
		createdAtStr, updatedAtStr string
	)
	if err := row.Scan(&idStr, &userIDStr, &courseName, &dateStr, &status, &note, &createdAtStr, &updatedAtStr); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, err
	}
	date, err := time.Parse(time.RFC3339Nano, dateStr)
	if err != nil {
		return nil, err
	}
	createdAt, err := time.Parse(time.RFC3339Nano, createdAtStr)
	if err != nil {
		return nil, err
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, updatedAtStr)
	if err != nil {
		return nil, err
	}

	return domain.RehydrateAttendanceRecord(
		sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt),
		userID, courseName, date, domain.AttendanceStatus(status), note.String,
	), nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(time.RFC3339Nano), Valid: true}
}

func parseNullTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
