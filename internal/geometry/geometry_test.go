package geometry

import (
	"strings"
	"testing"
)

func TestFitFilterSquareCanvas(t *testing.T) {
	want := "format=rgba,scale=w='if(gt(a,100/100),100,100*(iw/ih))':h='if(gt(a,100/100),100/(iw/ih),100)',crop=w='min(iw,100)':h='min(ih,100)':x='(iw-ow)/2':y='(ih-oh)/2',pad=w=100:h=100:x='(ow-iw)/2':y='(oh-ih)/2':color=ffffff00"
	if got := FitFilter(100, 100, ""); got != want {
		t.Fatalf("FitFilter(100, 100) =\n%s\nwant\n%s", got, want)
	}
}

func TestFitFilterWideCanvas(t *testing.T) {
	got := FitFilter(640, 360, "000000ff")
	for _, fragment := range []string{
		"scale=w='if(gt(a,640/360),640,360*(iw/ih))'",
		"h='if(gt(a,640/360),640/(iw/ih),360)'",
		"crop=w='min(iw,640)':h='min(ih,360)'",
		"pad=w=640:h=360:",
		"color=000000ff",
	} {
		if !strings.Contains(got, fragment) {
			t.Errorf("filter %q missing %q", got, fragment)
		}
	}
	// expressions contain commas, so check stage order by position
	last := -1
	for _, stage := range []string{"format=rgba,", ",scale=", ",crop=", ",pad="} {
		idx := strings.Index(got, stage)
		if idx <= last {
			t.Fatalf("stage %q out of order in %q", stage, got)
		}
		last = idx
	}
}

func TestCanvas(t *testing.T) {
	c := Canvas{Width: 100, Height: 100}
	if c.Empty() {
		t.Fatal("expected non-empty canvas")
	}
	if c.Filter("") != FitFilter(100, 100, DefaultPadColor) {
		t.Fatal("canvas filter should match FitFilter with default pad colour")
	}
	if !(Canvas{}).Empty() {
		t.Fatal("zero canvas should be empty")
	}
}
