package handler

import (
	"net/http"
	"testing"

	"github.com/myrteametrics/goldenbatch-api/internal/tag"
	"github.com/myrteametrics/goldenbatch-api/internal/tests"
)

func initTags(t *testing.T) tag.Repository {
	t.Helper()
	tests.CheckDebugLogs(t)
	r := tag.NewSeededRepository()
	t.Cleanup(tag.ReplaceGlobals(r))
	return r
}

func TestGetTags(t *testing.T) {
	initTags(t)

	rr := tests.BuildTestHandler(t, "GET", "/tags", "", "/tags", GetTags)
	tests.CheckTestHandlerStatus(t, rr, http.StatusOK)
	var tags []tag.TagConfig
	decode(t, rr.Body.Bytes(), &tags)
	if len(tags) != 8 {
		t.Errorf("unexpected tag count %d", len(tags))
	}

	rr = tests.BuildTestHandler(t, "GET", "/tags?type=CQA", "", "/tags", GetTags)
	tests.CheckTestHandlerStatus(t, rr, http.StatusOK)
	decode(t, rr.Body.Bytes(), &tags)
	if len(tags) != 3 {
		t.Errorf("unexpected CQA tag count %d", len(tags))
	}
	for _, tg := range tags {
		if tg.Type != tag.TypeCQA {
			t.Errorf("tag %s is not a CQA", tg.ID)
		}
	}

	rr = tests.BuildTestHandler(t, "GET", "/tags?type=XYZ", "", "/tags", GetTags)
	tests.CheckTestHandlerStatus(t, rr, http.StatusBadRequest)
}

func TestGetTag(t *testing.T) {
	initTags(t)

	rr := tests.BuildTestHandler(t, "GET", "/tags/3", "", "/tags/{id}", GetTag)
	tests.CheckTestHandlerStatus(t, rr, http.StatusOK)
	var tg tag.TagConfig
	decode(t, rr.Body.Bytes(), &tg)
	if tg.Name != "Reactor Temp" || tg.OpcNodeID != "ns=2;s=ReactTemp" {
		t.Errorf("unexpected tag %+v", tg)
	}

	rr = tests.BuildTestHandler(t, "GET", "/tags/99", "", "/tags/{id}", GetTag)
	tests.CheckTestHandlerStatus(t, rr, http.StatusNotFound)
}

func TestPostTag(t *testing.T) {
	r := initTags(t)

	body := `{"name":"Jacket Temp","description":"Cooling jacket","opcNodeId":"ns=2;s=JacketTemp","unit":"°C","type":"CPP","subType":"Temp"}`
	rr := tests.BuildTestHandler(t, "POST", "/tags", body, "/tags", PostTag)
	tests.CheckTestHandlerStatus(t, rr, http.StatusOK)
	var created tag.TagConfig
	decode(t, rr.Body.Bytes(), &created)
	if created.ID != "9" {
		t.Errorf("unexpected generated id %q", created.ID)
	}
	if _, found, _ := r.Get("9"); !found {
		t.Error("tag not stored")
	}

	rr = tests.BuildTestHandler(t, "POST", "/tags", `{"name":"Bad","opcNodeId":"JacketTemp","type":"CPP"}`, "/tags", PostTag)
	tests.CheckTestHandlerStatus(t, rr, http.StatusBadRequest)

	rr = tests.BuildTestHandler(t, "POST", "/tags", `{"id":"1","name":"Dup","opcNodeId":"ns=2;s=Dup","type":"CMA"}`, "/tags", PostTag)
	tests.CheckTestHandlerStatus(t, rr, http.StatusBadRequest)

	rr = tests.BuildTestHandler(t, "POST", "/tags", `not json`, "/tags", PostTag)
	tests.CheckTestHandlerStatus(t, rr, http.StatusBadRequest)
}

func TestValidateTag(t *testing.T) {
	r := initTags(t)

	rr := tests.BuildTestHandler(t, "POST", "/tags/validate", `{"name":"Ok","opcNodeId":"ns=3;s=Ok","type":"CMA"}`, "/tags/validate", ValidateTag)
	tests.CheckTestHandlerStatus(t, rr, http.StatusOK)

	rr = tests.BuildTestHandler(t, "POST", "/tags/validate", `{"name":"Ok","opcNodeId":"ns=3;s=Ok","type":"ABC"}`, "/tags/validate", ValidateTag)
	tests.CheckTestHandlerStatus(t, rr, http.StatusBadRequest)

	tags, _ := r.GetAll()
	if len(tags) != 8 {
		t.Error("validation stored a tag")
	}
}

func TestPutTag(t *testing.T) {
	r := initTags(t)

	body := `{"name":"Reactor Temperature","opcNodeId":"ns=2;s=ReactTemp2","unit":"°C","type":"CPP","subType":"Temp"}`
	rr := tests.BuildTestHandler(t, "PUT", "/tags/3", body, "/tags/{id}", PutTag)
	tests.CheckTestHandlerStatus(t, rr, http.StatusOK)
	tg, _, _ := r.Get("3")
	if tg.Name != "Reactor Temperature" || tg.OpcNodeID != "ns=2;s=ReactTemp2" {
		t.Errorf("tag not updated %+v", tg)
	}

	rr = tests.BuildTestHandler(t, "PUT", "/tags/42", body, "/tags/{id}", PutTag)
	tests.CheckTestHandlerStatus(t, rr, http.StatusNotFound)
}

func TestDeleteTag(t *testing.T) {
	r := initTags(t)

	rr := tests.BuildTestHandler(t, "DELETE", "/tags/8", "", "/tags/{id}", DeleteTag)
	tests.CheckTestHandler(t, rr, http.StatusOK, "")
	if _, found, _ := r.Get("8"); found {
		t.Error("tag not deleted")
	}

	rr = tests.BuildTestHandler(t, "DELETE", "/tags/8", "", "/tags/{id}", DeleteTag)
	tests.CheckTestHandlerStatus(t, rr, http.StatusNotFound)
}

func TestGetTagDeployment(t *testing.T) {
	initTags(t)

	rr := tests.BuildTestHandler(t, "GET", "/tags/deploy", "", "/tags/deploy", GetTagDeployment)
	tests.CheckTestHandlerStatus(t, rr, http.StatusOK)
	var d tag.Deployment
	decode(t, rr.Body.Bytes(), &d)
	if d.NodeCount != 8 {
		t.Errorf("unexpected node count %d", d.NodeCount)
	}
	if len(d.Groups[tag.TypeCMA]) != 2 || len(d.Groups[tag.TypeCPP]) != 3 || len(d.Groups[tag.TypeCQA]) != 3 {
		t.Errorf("unexpected groups %+v", d.Groups)
	}
}
