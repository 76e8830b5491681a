package seed

import (
	"bytes"
	"context"
	"flag"
	"strings"
	"testing"
	"time"

	coursev1 "github.com/louisbranch/registrar/api/course/v1"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type fakeCourseAdder struct {
	existing map[string]bool
	failOn   string
	requests []*coursev1.AddCourseRequest
}

func (f *fakeCourseAdder) AddCourse(_ context.Context, in *coursev1.AddCourseRequest, _ ...grpc.CallOption) (*coursev1.AddCourseResponse, error) {
	f.requests = append(f.requests, in)
	if in.GetCode() == f.failOn {
		return nil, status.Error(codes.Unavailable, "registry down")
	}
	if f.existing[in.GetCode()] {
		return nil, status.Error(codes.AlreadyExists, "course code taken")
	}
	return &coursev1.AddCourseResponse{Course: &coursev1.Course{Id: int64(len(f.requests)), Code: in.GetCode(), Seats: in.GetSeats()}}, nil
}

func TestAddCoursesSkipsExisting(t *testing.T) {
	client := &fakeCourseAdder{existing: map[string]bool{"CS201": true}}
	var out bytes.Buffer

	added, skipped, err := AddCourses(context.Background(), client, SampleCourses, &out)
	if err != nil {
		t.Fatalf("add courses: %v", err)
	}
	if added != 4 || skipped != 1 {
		t.Fatalf("added/skipped = %d/%d, want 4/1", added, skipped)
	}
	if len(client.requests) != len(SampleCourses) {
		t.Fatalf("requests = %d, want %d", len(client.requests), len(SampleCourses))
	}
	if !strings.Contains(out.String(), "CS201 already exists") {
		t.Fatalf("expected skip line, got %q", out.String())
	}
}

func TestAddCoursesStopsOnFailure(t *testing.T) {
	client := &fakeCourseAdder{failOn: "MATH101"}
	added, _, err := AddCourses(context.Background(), client, SampleCourses, nil)
	if err == nil {
		t.Fatal("expected failure")
	}
	if added != 2 || len(client.requests) != 3 {
		t.Fatalf("added = %d, requests = %d; want 2, 3", added, len(client.requests))
	}
}

func TestSampleCourses(t *testing.T) {
	seen := map[string]bool{}
	for _, course := range SampleCourses {
		if course.Code == "" || course.Title == "" || course.Seats <= 0 {
			t.Fatalf("invalid sample course: %+v", course)
		}
		if seen[course.Code] {
			t.Fatalf("duplicate code %s", course.Code)
		}
		seen[course.Code] = true
	}
}

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.CourseAddr != "course:8101" {
		t.Fatalf("course_addr = %q, want course:8101", cfg.CourseAddr)
	}
	if cfg.DialTimeout != 10*time.Second {
		t.Fatalf("dial_timeout = %s, want 10s", cfg.DialTimeout)
	}
}

func TestParseConfigFlags(t *testing.T) {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-course-addr", "localhost:8101", "-v"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.CourseAddr != "localhost:8101" || !cfg.Verbose {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}
