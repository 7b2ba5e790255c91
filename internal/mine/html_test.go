package mine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTMLPrecisePattern(t *testing.T) {
	markup := `<script>window.__STATE__ = {"rankList":[
		{"brandsInfo": {"brandNo": "B001", "brandName": "설화수"}},
		{"brandsInfo": {"brandNo": "B002", "brandName": "라네즈"}},
		{"brandsInfo": {"brandNo": "B003", "brandName": "라네즈"}}
	]};</script>
	<div>"brandName": "이결과에는없어야함"</div>`

	got := HTML(markup)
	assert.Equal(t, []string{"설화수", "라네즈"}, got)
}

func TestHTMLLoosePatternFallback(t *testing.T) {
	markup := `<script>var brands = [
		{"brandName": "설화수"},
		{"brandName": "A00123"},
		{"brandName": "라네즈"},
		{"brandName": "라네즈"}
	];</script>`

	got := HTML(markup)
	assert.Equal(t, []string{"설화수", "라네즈"}, got)
}

func TestHTMLDOMFallback(t *testing.T) {
	markup := `<html><body>
	<div class="rank_brand_list">
		<ul>
			<li><span class="brand_name">스킨푸드</span></li>
			<li><span class="brand_name">  어뮤즈 </span></li>
			<li><span class="brand_name">브랜드</span></li>
			<li><span class="brand_name">스킨푸드</span></li>
		</ul>
	</div>
	</body></html>`

	got := HTML(markup)
	assert.Equal(t, []string{"스킨푸드", "어뮤즈"}, got)
}

func TestHTMLEmptyAndBrandlessMarkup(t *testing.T) {
	assert.Empty(t, HTML(""))
	assert.Empty(t, HTML("<html><body><p>점검 중입니다</p></body></html>"))
}

func TestHTMLAllCandidatesRejected(t *testing.T) {
	// Placeholder-only matches must produce the explicit empty result, not
	// a partial list of junk.
	markup := `{"brandName": "A00001"}, {"brandName": "12345"}, {"brandName": "brand"}`
	assert.Empty(t, HTML(markup))
}

func TestJSONMinesContainers(t *testing.T) {
	payloads := [][]byte{
		[]byte(`{"data": {"list": [{"brandsInfo": {"brandName": "이니스프리"}}]}}`),
		[]byte(`{"outer": {"brandInfo": {"brandNm": "헤라"}}}`),
	}
	got := JSON(payloads)
	assert.Equal(t, []string{"이니스프리", "헤라"}, got)
}

func TestJSONSkipsMalformedPayloads(t *testing.T) {
	payloads := [][]byte{
		[]byte(`{"broken":`),
		[]byte(`{"brandsInfo": {"brandName": "설화수"}}`),
	}
	got := JSON(payloads)
	assert.Equal(t, []string{"설화수"}, got)
}

func TestJSONNameKeyOrder(t *testing.T) {
	// The canonical key wins even when alternates are present.
	payloads := [][]byte{
		[]byte(`{"brandsInfo": {"korBrandName": "다른이름", "brandName": "에스쁘아"}}`),
	}
	got := JSON(payloads)
	require.Equal(t, []string{"에스쁘아"}, got)

	// First present key rejected means the container contributes nothing,
	// alternates are not consulted.
	payloads = [][]byte{
		[]byte(`{"brandsInfo": {"brandName": "A00123", "korBrandName": "진짜이름"}}`),
	}
	assert.Empty(t, JSON(payloads))
}

func TestJSONDeduplicatesAcrossPayloads(t *testing.T) {
	payloads := [][]byte{
		[]byte(`{"brandsInfo": {"brandName": "라운드랩"}}`),
		[]byte(`{"brandsInfo": {"brandName": "라운드랩"}}`),
	}
	assert.Equal(t, []string{"라운드랩"}, JSON(payloads))
}

func TestJSONDepthGuard(t *testing.T) {
	deep := ""
	for i := 0; i < 100; i++ {
		deep += `{"a":`
	}
	deep += `{"brandsInfo": {"brandName": "설화수"}}`
	for i := 0; i < 100; i++ {
		deep += `}`
	}
	assert.Empty(t, JSON([][]byte{[]byte(deep)}))

	shallow := `{"a": {"b": {"brandsInfo": {"brandName": "설화수"}}}}`
	assert.Equal(t, []string{"설화수"}, JSON([][]byte{[]byte(shallow)}))
}

func TestJSONArrayOrderIsRankOrder(t *testing.T) {
	payloads := [][]byte{
		[]byte(`{"list": [
			{"brandsInfo": {"brandName": "설화수"}},
			{"brandsInfo": {"brandName": "라네즈"}},
			{"brandsInfo": {"brandName": "헤라"}}
		]}`),
	}
	assert.Equal(t, []string{"설화수", "라네즈", "헤라"}, JSON(payloads))
}
