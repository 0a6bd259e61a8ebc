package server

import (
	"context"
	"encoding/base64"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/joseph-ayodele/lecture-processor/internal/core"
	"github.com/joseph-ayodele/lecture-processor/internal/export"
	"github.com/joseph-ayodele/lecture-processor/internal/ingest"
	"github.com/joseph-ayodele/lecture-processor/internal/repository"
	"github.com/joseph-ayodele/lecture-processor/internal/testutil"
)

type harness struct {
	client *Client
	conn   *grpc.ClientConn
	dir    string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctx := context.Background()
	store, err := repository.Open(ctx, repository.Config{DSN: "sqlite::memory:"}, nil)
	require.NoError(t, err)
	t.Cleanup(store.Close)
	require.NoError(t, store.Migrate(ctx))

	lectures := repository.NewLectureRepository(store, nil)
	jobs := repository.NewExtractJobRepository(store, nil)
	quizzes := repository.NewQuizRepository(store, nil)
	proc := core.NewProcessor(nil, nil, lectures, jobs, quizzes, nil, nil, 0, "")

	gs, _ := NewGRPCServer(Deps{
		Processor: proc,
		Lectures:  lectures,
		Jobs:      jobs,
		Quizzes:   quizzes,
		Exporter:  export.NewService(lectures, nil),
		Ingestor:  ingest.NewFSIngestor(proc, false, nil),
	}, nil)

	lis := bufconn.Listen(1 << 20)
	go func() { _ = gs.Serve(lis) }()
	t.Cleanup(gs.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return &harness{client: NewClient(conn), conn: conn, dir: t.TempDir()}
}

func (h *harness) writePDF(t *testing.T, rel string, lines ...string) string {
	t.Helper()
	p := filepath.Join(h.dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, testutil.PDF("Graphs", lines...), 0o644))
	return p
}

func code(err error) codes.Code { return status.Code(err) }

func TestHealth(t *testing.T) {
	h := newHarness(t)
	resp, err := healthpb.NewHealthClient(h.conn).Check(context.Background(), &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}

func TestExtractGetListJob(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	path := h.writePDF(t, "CS101/Lecture 2/graphs.pdf", "Breadth first search", "Depth first search")

	var header metadata.MD
	out, err := h.client.Call(ctx, "ExtractDocument", map[string]any{"path": path, "file_type": "pdf"}, grpc.Header(&header))
	require.NoError(t, err)
	assert.NotEmpty(t, header.Get(RequestIDHeader))

	lec := out.GetFields()["lecture"].GetStructValue()
	require.NotNil(t, lec)
	assert.Equal(t, "graphs.pdf", lec.GetFields()["file_name"].GetStringValue())
	assert.Equal(t, "PDF", lec.GetFields()["file_type"].GetStringValue())
	assert.Contains(t, lec.GetFields()["content"].GetStringValue(), "Breadth first search")
	assert.False(t, out.GetFields()["deduplicated"].GetBoolValue())
	id := lec.GetFields()["id"].GetStringValue()
	jobID := out.GetFields()["job_id"].GetStringValue()

	again, err := h.client.Call(ctx, "ExtractDocument", map[string]any{"path": path})
	require.NoError(t, err)
	assert.True(t, again.GetFields()["deduplicated"].GetBoolValue())

	got, err := h.client.Call(ctx, "GetLecture", map[string]any{"id": id})
	require.NoError(t, err)
	assert.Equal(t, id, got.GetFields()["lecture"].GetStructValue().GetFields()["id"].GetStringValue())

	list, err := h.client.Call(ctx, "ListLectures", map[string]any{})
	require.NoError(t, err)
	items := list.GetFields()["lectures"].GetListValue().GetValues()
	require.Len(t, items, 1)
	_, hasContent := items[0].GetStructValue().GetFields()["content"]
	assert.False(t, hasContent)

	job, err := h.client.Call(ctx, "GetJob", map[string]any{"id": jobID})
	require.NoError(t, err)
	jf := job.GetFields()["job"].GetStructValue().GetFields()
	assert.Equal(t, "EXTRACT_OK", jf["status"].GetStringValue())
	assert.Equal(t, id, jf["lecture_id"].GetStringValue())
}

func TestIngestAndExport(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.writePDF(t, "a/one.pdf", "first")
	h.writePDF(t, "b/two.pdf", "second")
	require.NoError(t, os.WriteFile(filepath.Join(h.dir, "notes.txt"), []byte("x"), 0o644))

	out, err := h.client.Call(ctx, "IngestDirectory", map[string]any{"root_path": h.dir})
	require.NoError(t, err)
	assert.EqualValues(t, 2, out.GetFields()["matched"].GetNumberValue())
	assert.EqualValues(t, 2, out.GetFields()["succeeded"].GetNumberValue())
	assert.Len(t, out.GetFields()["results"].GetListValue().GetValues(), 2)

	exp, err := h.client.Call(ctx, "ExportLectures", map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, "lectures.xlsx", exp.GetFields()["filename"].GetStringValue())
	data, err := base64.StdEncoding.DecodeString(exp.GetFields()["xlsx"].GetStringValue())
	require.NoError(t, err)
	assert.Equal(t, "PK", string(data[:2]))
}

func TestErrorCodes(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	pdf := h.writePDF(t, "x.pdf", "body")

	tests := []struct {
		name   string
		method string
		req    map[string]any
		want   codes.Code
	}{
		{"missing path", "ExtractDocument", map[string]any{}, codes.InvalidArgument},
		{"unsupported extension", "ExtractDocument", map[string]any{"path": "/tmp/a.docx"}, codes.InvalidArgument},
		{"bad file type", "ExtractDocument", map[string]any{"path": pdf, "file_type": "docx"}, codes.InvalidArgument},
		{"mismatched file type", "ExtractDocument", map[string]any{"path": pdf, "file_type": "pptx"}, codes.InvalidArgument},
		{"bad id", "GetLecture", map[string]any{"id": "nope"}, codes.InvalidArgument},
		{"missing lecture", "GetLecture", map[string]any{"id": "8a0f4c1e-52b4-4c39-9d0e-0a4f0c1b2d3e"}, codes.NotFound},
		{"missing job", "GetJob", map[string]any{"id": "8a0f4c1e-52b4-4c39-9d0e-0a4f0c1b2d3e"}, codes.NotFound},
		{"limit", "ListLectures", map[string]any{"limit": 0}, codes.InvalidArgument},
		{"no queue", "EnqueueDocument", map[string]any{"path": pdf}, codes.Unimplemented},
		{"missing root", "IngestDirectory", map[string]any{}, codes.InvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.client.Call(ctx, tt.method, tt.req)
			assert.Equal(t, tt.want, code(err), "%v", err)
		})
	}

	out, err := h.client.Call(ctx, "ExtractDocument", map[string]any{"path": pdf})
	require.NoError(t, err)
	id := out.GetFields()["lecture"].GetStructValue().GetFields()["id"].GetStringValue()
	_, err = h.client.Call(ctx, "GenerateQuiz", map[string]any{"lecture_id": id})
	assert.Equal(t, codes.FailedPrecondition, code(err))
	_, err = h.client.Call(ctx, "GetQuiz", map[string]any{"lecture_id": id})
	assert.Equal(t, codes.NotFound, code(err))
}
