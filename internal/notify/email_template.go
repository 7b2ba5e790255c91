package notify

const rankingHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: -apple-system, 'Segoe UI', 'Malgun Gothic', sans-serif; color: #1a1a2e; margin: 0; padding: 20px; background: #f4f4f8; }
  .card { max-width: 560px; margin: 0 auto; background: #ffffff; border-radius: 8px; padding: 24px; }
  h1 { font-size: 18px; margin: 0 0 4px 0; }
  .date { color: #6b7280; font-size: 13px; margin-bottom: 16px; }
  table { width: 100%; border-collapse: collapse; }
  td { padding: 6px 8px; border-bottom: 1px solid #eef0f3; font-size: 14px; }
  .rank { width: 32px; color: #6b7280; text-align: right; }
  .delta { width: 64px; text-align: right; font-size: 13px; }
  .highlights { margin-top: 20px; padding-top: 12px; border-top: 1px solid #eef0f3; }
  .highlights h2 { font-size: 14px; margin: 0 0 8px 0; }
  .highlights li { font-size: 13px; margin-bottom: 4px; }
</style>
</head>
<body>
<div class="card">
  <h1>📊 올리브영 데일리 브랜드 랭킹 Top10</h1>
  <div class="date">{{.Date}} (KST)</div>
  <table>
    {{range .Entries}}
    <tr>
      <td class="rank">{{.Rank}}</td>
      <td>{{.Name}}</td>
      <td class="delta">{{.Delta}}</td>
    </tr>
    {{end}}
  </table>
  {{if .Commentary}}
  <div class="highlights">
    <h2>Highlights</h2>
    <ul>
      {{range .Commentary}}<li>{{.}}</li>{{end}}
    </ul>
  </div>
  {{end}}
</div>
</body>
</html>
`
