package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	sharedDomain "github.com/felixgeelhaar/studora/internal/shared/domain"
	sharedPersistence "github.com/felixgeelhaar/studora/internal/shared/infrastructure/persistence"
	"github.com/felixgeelhaar/studora/internal/timetable/domain"
)

var (
	ErrEntryNotFound      = errors.New("timetable entry not found")
	ErrAttendanceNotFound = errors.New("attendance record not found")
)

const entryColumns = `id, user_id, course_name, course_code, instructor, room,
       days_of_week, start_time, end_time, semester_start, semester_end,
       color, category, excluded_dates, created_at, updated_at`

// PostgresEntryRepository implements domain.EntryRepository using PostgreSQL.
type PostgresEntryRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresEntryRepository creates a new PostgreSQL entry repository.
func NewPostgresEntryRepository(pool *pgxpool.Pool) *PostgresEntryRepository {
	return &PostgresEntryRepository{pool: pool}
}

// Save persists a timetable entry to the database.
func (r *PostgresEntryRepository) Save(ctx context.Context, entry *domain.TimetableEntry) error {
	query := `
		INSERT INTO timetable_entries (
			id, user_id, course_name, course_code, instructor, room,
			days_of_week, start_time, end_time, semester_start, semester_end,
			color, category, excluded_dates, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (id) DO UPDATE SET
			course_name = EXCLUDED.course_name,
			course_code = EXCLUDED.course_code,
			instructor = EXCLUDED.instructor,
			room = EXCLUDED.room,
			days_of_week = EXCLUDED.days_of_week,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			semester_start = EXCLUDED.semester_start,
			semester_end = EXCLUDED.semester_end,
			color = EXCLUDED.color,
			category = EXCLUDED.category,
			excluded_dates = EXCLUDED.excluded_dates,
			updated_at = EXCLUDED.updated_at
	`

	days := make([]int32, 0, len(entry.DaysOfWeek()))
	for _, day := range entry.DaysOfWeek() {
		days = append(days, int32(day))
	}

	exec := sharedPersistence.Executor(ctx, r.pool)
	_, err := exec.Exec(ctx, query,
		entry.ID(),
		entry.UserID(),
		entry.CourseName(),
		entry.CourseCode(),
		entry.Instructor(),
		entry.Room(),
		days,
		entry.StartTime(),
		entry.EndTime(),
		entry.SemesterStart(),
		entry.SemesterEnd(),
		entry.Color(),
		entry.Category(),
		entry.ExcludedDates(),
		entry.CreatedAt(),
		entry.UpdatedAt(),
	)
	return err
}

// FindByID retrieves a timetable entry by its ID.
func (r *PostgresEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.TimetableEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM timetable_entries WHERE id = $1`

	exec := sharedPersistence.Executor(ctx, r.pool)
	entry, err := scanEntry(exec.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return entry, nil
}

// FindByUserID retrieves all timetable entries for a user.
func (r *PostgresEntryRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.TimetableEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM timetable_entries WHERE user_id = $1 ORDER BY course_name`

	exec := sharedPersistence.Executor(ctx, r.pool)
	rows, err := exec.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.TimetableEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Delete removes a timetable entry from the database.
func (r *PostgresEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	exec := sharedPersistence.Executor(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM timetable_entries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func scanEntry(row pgx.Row) (*domain.TimetableEntry, error) {
	var (
		id                         uuid.UUID
		userID                     uuid.UUID
		courseName                 string
		courseCode                 string
		instructor                 string
		room                       string
		days                       []int32
		startTime, endTime         string
		semesterStart, semesterEnd *time.Time
		color, category            string
		excludedDates              []string
		createdAt, updatedAt       time.Time
	)
	err := row.Scan(&id, &userID, &courseName, &courseCode, &instructor, &room,
		&days, &startTime, &endTime, &semesterStart, &semesterEnd,
		&color, &category, &excludedDates, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	daysOfWeek := make([]int, 0, len(days))
	for _, day := range days {
		daysOfWeek = append(daysOfWeek, int(day))
	}

	return domain.RehydrateTimetableEntry(
		sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt),
		userID, courseName, courseCode, instructor, room,
		daysOfWeek, startTime, endTime, semesterStart, semesterEnd,
		color, category, excludedDates,
	), nil
}

const attendanceColumns = `id, user_id, course_name, date, status, note, created_at, updated_at`

// PostgresAttendanceRepository implements domain.AttendanceRepository using PostgreSQL.
type PostgresAttendanceRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresAttendanceRepository creates a new PostgreSQL attendance repository.
func NewPostgresAttendanceRepository(pool *pgxpool.Pool) *PostgresAttendanceRepository {
	return &PostgresAttendanceRepository{pool: pool}
}

// Save persists an attendance record to the database.
func (r *PostgresAttendanceRepository) Save(ctx context.Context, record *domain.AttendanceRecord) error {
	query := `
		INSERT INTO attendance_records (
			id, user_id, course_name, date, status, note, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			course_name = EXCLUDED.course_name,
			date = EXCLUDED.date,
			status = EXCLUDED.status,
			note = EXCLUDED.note,
			updated_at = EXCLUDED.updated_at
	`

	exec := sharedPersistence.Executor(ctx, r.pool)
	_, err := exec.Exec(ctx, query,
		record.ID(),
		record.UserID(),
		record.CourseName(),
		record.Date(),
		string(record.Status()),
		record.Note(),
		record.CreatedAt(),
		record.UpdatedAt(),
	)
	return err
}

// FindByID retrieves an attendance record by its ID.
func (r *PostgresAttendanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.AttendanceRecord, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance_records WHERE id = $1`

	exec := sharedPersistence.Executor(ctx, r.pool)
	record, err := scanAttendance(exec.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAttendanceNotFound
		}
		return nil, err
	}
	return record, nil
}

// FindByUserID retrieves all attendance records for a user.
func (r *PostgresAttendanceRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.AttendanceRecord, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance_records WHERE user_id = $1 ORDER BY date DESC`
	return r.findMany(ctx, query, userID)
}

// FindByCourse retrieves a user's attendance records for one course.
func (r *PostgresAttendanceRepository) FindByCourse(ctx context.Context, userID uuid.UUID, courseName string) ([]*domain.AttendanceRecord, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance_records WHERE user_id = $1 AND course_name = $2 ORDER BY date DESC`
	return r.findMany(ctx, query, userID, courseName)
}

// FindByDateRange retrieves a user's attendance records within [from, to).
func (r *PostgresAttendanceRepository) FindByDateRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*domain.AttendanceRecord, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance_records WHERE user_id = $1 AND date >= $2 AND date < $3 ORDER BY date DESC`
	return r.findMany(ctx, query, userID, from, to)
}

// Delete removes an attendance record from the database.
func (r *PostgresAttendanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	exec := sharedPersistence.Executor(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM attendance_records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAttendanceNotFound
	}
	return nil
}

func (r *PostgresAttendanceRepository) findMany(ctx context.Context, query string, args ...any) ([]*domain.AttendanceRecord, error) {
	exec := sharedPersistence.Executor(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*domain.AttendanceRecord
	for rows.Next() {
		record, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func scanAttendance(row pgx.Row) (*domain.AttendanceRecord, error) {
	var (
		id, userID           uuid.UUID
		courseName           string
		date                 time.Time
		status               string
		note                 string
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &userID, &courseName, &date, &status, &note, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return domain.RehydrateAttendanceRecord(
		sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt),
		userID, courseName, date, domain.AttendanceStatus(status), note,
	), nil
}
