package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"
)

func doGet(t *testing.T, ts *TestServer, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(ts.Server.URL + path)
	if err != nil {
		t.Fatalf("GET %s failed: %v", path, err)
	}
	return resp
}

func doPost(t *testing.T, ts *TestServer, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.Server.URL+path, "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("POST %s failed: %v", path, err)
	}
	return resp
}

func doPatch(t *testing.T, ts *TestServer, path, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPatch, ts.Server.URL+path, bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("failed to build PATCH %s: %v", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PATCH %s failed: %v", path, err)
	}
	return resp
}

func wantStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected %d, got %d: %s", want, resp.StatusCode, string(body))
	}
}

func countRows(t *testing.T, ts *TestServer, table string) int {
	t.Helper()
	var count int
	if err := ts.DB.Get(&count, "SELECT COUNT(*) FROM "+table); err != nil {
		t.Fatalf("failed to count %s: %v", table, err)
	}
	return count
}

func TestHealth(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	resp := doGet(t, ts, "/health")
	defer resp.Body.Close()
	wantStatus(t, resp, http.StatusOK)

	var data struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if data.Status != "ok" {
		t.Fatalf("unexpected health status: %s", data.Status)
	}
}

func TestSignupAndDuplicateEmail(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()
	ts.LoadFixtures(t)

	resp := doPost(t, ts, "/signup", `{"name":"Eve","email":"eve@x.com","password":"secret123"}`)
	defer resp.Body.Close()
	wantStatus(t, resp, http.StatusCreated)

	var created struct {
		ID int `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected an assigned user id")
	}

	dup := doPost(t, ts, "/signup", `{"name":"Eve Again","email":"eve@x.com","password":"secret123"}`)
	defer dup.Body.Close()
	wantStatus(t, dup, http.StatusConflict)
}

func TestLogin(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()
	ts.LoadFixtures(t)

	resp := doPost(t, ts, "/login", `{"email":"ana@x.com","password":"secret123"}`)
	defer resp.Body.Close()
	wantStatus(t, resp, http.StatusOK)

	var user struct {
		ID    int    `json:"id"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if user.ID != 1 || user.Email != "ana@x.com" {
		t.Fatalf("unexpected login response: %+v", user)
	}

	wrong := doPost(t, ts, "/login", `{"email":"ana@x.com","password":"nope123"}`)
	defer wrong.Body.Close()
	wantStatus(t, wrong, http.StatusUnauthorized)

	unknown := doPost(t, ts, "/login", `{"email":"ghost@x.com","password":"secret123"}`)
	defer unknown.Body.Close()
	wantStatus(t, unknown, http.StatusNotFound)
}

func TestCreateTeamWithUnknownMemberPersistsNothing(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()
	ts.LoadFixtures(t)

	before := countRows(t, ts, "teams")

	resp := doPost(t, ts, "/create_team?admin_id=1",
		`{"name":"QA","description":"quality","member_ids":[1,2,999]}`)
	defer resp.Body.Close()
	wantStatus(t, resp, http.StatusBadRequest)

	if after := countRows(t, ts, "teams"); after != before {
		t.Fatalf("expected %d teams, got %d", before, after)
	}
}

func TestCreateTeamAndList(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()
	ts.LoadFixtures(t)

	resp := doPost(t, ts, "/create_team?admin_id=1",
		`{"name":"QA","description":"quality","member_ids":[2,3]}`)
	defer resp.Body.Close()
	wantStatus(t, resp, http.StatusCreated)

	var created struct {
		ID        int   `json:"id"`
		MemberIDs []int `json:"member_ids"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(created.MemberIDs) != 2 {
		t.Fatalf("expected 2 member ids echoed, got %v", created.MemberIDs)
	}

	list := doGet(t, ts, "/teams_list")
	defer list.Body.Close()
	wantStatus(t, list, http.StatusOK)

	var teams []struct {
		Name          string `json:"name"`
		CreatedByName string `json:"created_by_name"`
		MemberIDs     []int  `json:"member_ids"`
	}
	if err := json.NewDecoder(list.Body).Decode(&teams); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(teams) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(teams))
	}
	if teams[0].CreatedByName != "Ana" {
		t.Fatalf("expected creator Ana, got %s", teams[0].CreatedByName)
	}
}

func TestCreateProjectMembershipCheck(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()
	ts.LoadFixtures(t)

	before := countRows(t, ts, "projects")

	// Dave (user 4) is not a member of team 1.
	resp := doPost(t, ts, "/create_project?admin_id=4",
		`{"name":"App","description":"mobile app","team_id":1}`)
	defer resp.Body.Close()
	wantStatus(t, resp, http.StatusBadRequest)

	if after := countRows(t, ts, "projects"); after != before {
		t.Fatalf("expected %d projects, got %d", before, after)
	}

	ok := doPost(t, ts, "/create_project?admin_id=1",
		`{"name":"App","description":"mobile app","team_id":1}`)
	defer ok.Body.Close()
	wantStatus(t, ok, http.StatusCreated)

	list := doGet(t, ts, "/projects?team_id=1")
	defer list.Body.Close()
	wantStatus(t, list, http.StatusOK)

	var projects []struct {
		ID int `json:"id"`
	}
	if err := json.NewDecoder(list.Body).Decode(&projects); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("expected 2 projects for team 1, got %d", len(projects))
	}
}

func TestProjectWithTasks(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()
	ts.LoadFixtures(t)

	resp := doPost(t, ts, "/project_with_tasks?admin_id=1", `{
		"name": "Launch",
		"description": "launch prep",
		"team_id": 1,
		"members": [
			{"user_id": 2, "task_title": "Write docs", "task_desc": "user guide"},
			{"user_id": 3, "task_title": "Run QA"}
		]
	}`)
	defer resp.Body.Close()
	wantStatus(t, resp, http.StatusCreated)

	var data struct {
		Project struct {
			ID int `json:"id"`
		} `json:"project"`
		Tasks []struct {
			Status     string `json:"status"`
			AssignedTo int    `json:"assigned_to"`
		} `json:"tasks"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(data.Tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(data.Tasks))
	}
	for _, task := range data.Tasks {
		if task.Status != "To-Do" {
			t.Fatalf("expected To-Do status, got %s", task.Status)
		}
	}

	denied := doPost(t, ts, "/project_with_tasks?admin_id=4", `{
		"name": "Shadow",
		"team_id": 1,
		"members": [{"user_id": 2, "task_title": "x"}]
	}`)
	defer denied.Body.Close()
	wantStatus(t, denied, http.StatusBadRequest)
}

func TestBulkTasksAllOrNothing(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()
	ts.LoadFixtures(t)

	before := countRows(t, ts, "tasks")

	// Dave (user 4) is not in the project team: nothing may be created.
	resp := doPost(t, ts, "/bulk_tasks/1", `{"title":"Review","assigned_to":[2,4]}`)
	defer resp.Body.Close()
	wantStatus(t, resp, http.StatusBadRequest)

	if after := countRows(t, ts, "tasks"); after != before {
		t.Fatalf("expected %d tasks, got %d", before, after)
	}

	ok := doPost(t, ts, "/bulk_tasks/1", `{"title":"Review","assigned_to":[2,3]}`)
	defer ok.Body.Close()
	wantStatus(t, ok, http.StatusCreated)

	var tasks []struct {
		Title      string `json:"title"`
		AssignedTo int    `json:"assigned_to"`
	}
	if err := json.NewDecoder(ok.Body).Decode(&tasks); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}

	missing := doPost(t, ts, "/bulk_tasks/999", `{"title":"Review","assigned_to":[2]}`)
	defer missing.Body.Close()
	wantStatus(t, missing, http.StatusNotFound)
}

func TestTaskFilters(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()
	ts.LoadFixtures(t)

	resp := doPost(t, ts, "/create_task?project_id=1", `{"title":"Fix CSS","assigned_to":3}`)
	defer resp.Body.Close()
	wantStatus(t, resp, http.StatusCreated)

	byProject := doGet(t, ts, "/tasks?project_id=1")
	defer byProject.Body.Close()
	wantStatus(t, byProject, http.StatusOK)

	var tasks []struct {
		ProjectID  int `json:"project_id"`
		AssignedTo int `json:"assigned_to"`
	}
	if err := json.NewDecoder(byProject.Body).Decode(&tasks); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks for project 1, got %d", len(tasks))
	}
	for _, task := range tasks {
		if task.ProjectID != 1 {
			t.Fatalf("task from wrong project: %d", task.ProjectID)
		}
	}

	both := doGet(t, ts, "/tasks?project_id=1&user_id=3")
	defer both.Body.Close()
	wantStatus(t, both, http.StatusOK)

	tasks = nil
	if err := json.NewDecoder(both.Body).Decode(&tasks); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(tasks) != 1 || tasks[0].AssignedTo != 3 {
		t.Fatalf("expected exactly Carol's task, got %+v", tasks)
	}
}

func TestUpdateTaskStatus(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()
	ts.LoadFixtures(t)

	// Task 1 is assigned to Bob (user 2); Carol may not touch it.
	forbidden := doPatch(t, ts, "/tasks/1/status?user_id=3", `{"status":"Completed"}`)
	defer forbidden.Body.Close()
	wantStatus(t, forbidden, http.StatusForbidden)

	invalid := doPatch(t, ts, "/tasks/1/status?user_id=2", `{"status":"Done"}`)
	defer invalid.Body.Close()
	wantStatus(t, invalid, http.StatusBadRequest)

	var status string
	if err := ts.DB.Get(&status, "SELECT status FROM tasks WHERE id = 1"); err != nil {
		t.Fatalf("failed to read task status: %v", err)
	}
	if status != "To-Do" {
		t.Fatalf("status changed despite rejections: %s", status)
	}

	ok := doPatch(t, ts, "/tasks/1/status?user_id=2", `{"status":"In Progress"}`)
	defer ok.Body.Close()
	wantStatus(t, ok, http.StatusOK)

	var updated struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(ok.Body).Decode(&updated); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if updated.Status != "In Progress" {
		t.Fatalf("expected In Progress, got %s", updated.Status)
	}

	missing := doPatch(t, ts, "/tasks/999/status?user_id=2", `{"status":"Completed"}`)
	defer missing.Body.Close()
	wantStatus(t, missing, http.StatusNotFound)
}

func TestAdminAndMemberTaskViews(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()
	ts.LoadFixtures(t)

	admin := doGet(t, ts, "/admin/tasks")
	defer admin.Body.Close()
	wantStatus(t, admin, http.StatusOK)

	var adminRows []struct {
		Title       string `json:"title"`
		ProjectName string `json:"project_name"`
		TeamName    string `json:"team_name"`
		MemberName  string `json:"member_name"`
	}
	if err := json.NewDecoder(admin.Body).Decode(&adminRows); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(adminRows) != 1 {
		t.Fatalf("expected 1 task row, got %d", len(adminRows))
	}
	row := adminRows[0]
	if row.ProjectName != "Site" || row.TeamName != "Eng" || row.MemberName != "Bob" {
		t.Fatalf("unexpected admin view row: %+v", row)
	}

	member := doGet(t, ts, "/member/tasks?user_id=2")
	defer member.Body.Close()
	wantStatus(t, member, http.StatusOK)

	var memberRows []map[string]interface{}
	if err := json.NewDecoder(member.Body).Decode(&memberRows); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(memberRows) != 1 {
		t.Fatalf("expected 1 task row, got %d", len(memberRows))
	}
	if _, ok := memberRows[0]["team_name"]; ok {
		t.Fatal("member view must not include team_name")
	}
	if memberRows[0]["project_name"] != "Site" {
		t.Fatalf("unexpected member view row: %+v", memberRows[0])
	}

	empty := doGet(t, ts, "/member/tasks?user_id=4")
	defer empty.Body.Close()
	wantStatus(t, empty, http.StatusOK)

	memberRows = nil
	if err := json.NewDecoder(empty.Body).Decode(&memberRows); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(memberRows) != 0 {
		t.Fatalf("expected no tasks for Dave, got %d", len(memberRows))
	}
}

func TestUsersList(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()
	ts.LoadFixtures(t)

	resp := doGet(t, ts, "/users_list")
	defer resp.Body.Close()
	wantStatus(t, resp, http.StatusOK)

	var users []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(users) != 4 {
		t.Fatalf("expected 4 users, got %d", len(users))
	}
	for _, user := range users {
		if _, ok := user["password"]; ok {
			t.Fatal("password must not appear in the users list")
		}
	}
}
