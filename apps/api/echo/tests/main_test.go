package tests

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"

	. "github.com/tolberthub/admissions/apps/api/echo"
	"github.com/tolberthub/admissions/core"
	"github.com/tolberthub/admissions/core/student"
	"github.com/tolberthub/admissions/services/email"
	"github.com/tolberthub/admissions/storage/localstore"
	testutil "github.com/tolberthub/admissions/tests"
)

var (
	app     Server
	conf    *core.Config
	stuRepo student.Repository
)

func TestMain(m *testing.M) {
	conf = testutil.NewConfig()

	// set up store & repos
	stuRepo = localstore.NewStudentStore(localstore.NewMemStorage())

	// set up services
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	stuSvc := student.NewServiceMock(stuRepo, mailSvc)

	// set up server
	app = NewServer(&Options{
		Conf:           conf,
		Logger:         core.NewStdLogger(log.New(os.Stderr, "", log.LstdFlags)),
		StudentSvc:     stuSvc,
		DisableReqLogs: true,
	})

	os.Exit(m.Run())
}

func resetStore(t *testing.T) {
	t.Helper()
	if err := stuRepo.SaveStudents(nil); err != nil {
		t.Fatalf("resetStore(): %v", err)
	}
	emailsvc.ClearSentMessages()
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	return false, nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func unmarchallBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("unmarchallBody(): %v; body %s", err, rec.Body.String())
	}
}
