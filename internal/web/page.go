package web

const pageHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>raintarget</title>
  {{if .ShareDescription}}
  <meta name="description" content="{{.ShareDescription}}">
  <meta property="og:description" content="{{.ShareDescription}}">
  {{end}}
  <style>
    body { font-family: system-ui, sans-serif; margin: 0; padding: 24px; max-width: 960px; box-sizing: border-box; }
    * { box-sizing: border-box; }
    h2 { margin-top: 0; font-weight: 600; }
    .err { color: #b00020; margin: 12px 0; padding: 10px; background: #ffebee; border-radius: 6px; }
    .card { border: 1px solid #e0e0e0; border-radius: 10px; padding: 16px; margin: 16px 0; background: #fafafa; }
    .mono { font-family: ui-monospace, SFMono-Regular, Menlo, Monaco, Consolas, "Liberation Mono", "Courier New", monospace; }
    table { border-collapse: collapse; width: 100%; margin-top: 10px; }
    td { padding: 8px 10px; border-top: 1px solid #eee; vertical-align: top; }
    .k { width: 320px; color: #444; }
    .hint { color: #666; font-size: 0.9em; margin-top: 4px; }
    .metric { font-size: 1.6em; font-weight: 600; }
    .caption { color: #666; font-size: 0.9em; margin-top: 12px; }
    footer { margin-top: 40px; color: #666; font-size: 0.9em; text-align: center; }

    .form-grid { display: grid; grid-template-columns: 1fr 1fr; gap: 0 32px; }
    @media (max-width: 640px) { .form-grid { grid-template-columns: 1fr; } }
    .form-section-title { font-size: 0.85em; font-weight: 600; text-transform: uppercase; letter-spacing: 0.04em; color: #555; margin-bottom: 12px; padding-bottom: 6px; border-bottom: 1px solid #e0e0e0; }
    .field { margin-bottom: 14px; }
    .field label { display: block; font-weight: 500; color: #333; margin-bottom: 4px; font-size: 0.95em; }
    .field input[type="number"] { padding: 8px 10px; font-size: 1em; border: 1px solid #ccc; border-radius: 6px; width: 100%; max-width: 140px; }
    .field input:focus { outline: none; border-color: #1976d2; box-shadow: 0 0 0 2px rgba(25,118,210,0.2); }
    .form-actions { padding-top: 16px; border-top: 1px solid #e0e0e0; }
    button[type="submit"] { padding: 10px 20px; font-size: 1em; font-weight: 500; background: #1976d2; color: #fff; border: none; border-radius: 6px; cursor: pointer; }
    button[type="submit"]:hover { background: #1565c0; }
  </style>
</head>
<body>
  <h2>HCL Rain-Reduction Calculator</h2>
  <p>Enter the first-innings score and the total <b>cumulative</b> overs that will be lost from the
  second innings. Each over lost knocks 0.66 of the initial required run-rate off the target and the
  result is rounded <b>up</b> to the next whole run.</p>

  <form method="POST" action="/calc">
    <div class="form-grid">
      <div class="form-section">
        <div class="form-section-title">First innings</div>
        <div class="field">
          <label for="score">First-innings score (runs)</label>
          <input id="score" name="score" type="number" min="0" max="{{.MaxScore}}" step="1" value="{{.Score}}" required>
        </div>
        <div class="field">
          <label for="scheduled_overs">Scheduled overs</label>
          <input id="scheduled_overs" name="scheduled_overs" type="number" min="{{.MinScheduled}}" max="{{.MaxScheduled}}" step="1" value="{{.ScheduledOvers}}" placeholder="{{.DefaultOvers}}">
          <div class="hint">Overs allocated to each side ({{.MinScheduled}}-{{.MaxScheduled}})</div>
        </div>
      </div>

      <div class="form-section">
        <div class="form-section-title">Second innings</div>
        <div class="field">
          <label for="overs_lost">Overs lost from the chase</label>
          <input id="overs_lost" name="overs_lost" type="number" min="0" max="{{.MaxOversLost}}" step="1" value="{{.OversLost}}" required>
          <div class="hint">At most {{.MaxOversLost}} overs may be deducted; at least {{.MinOversLeft}} must remain.</div>
        </div>
      </div>
    </div>

    <div class="form-actions">
      <button type="submit">Calculate</button>
    </div>
  </form>

  {{if .Error}}<div class="err">{{.Error}}</div>{{end}}

  {{with .Result}}
    <div class="card">
      <div><b>Overs available to chasing side</b>: <span class="mono">{{.OversAvailable}}</span> overs</div>
      <table>
        <tr><td class="k">Par / tie score</td><td class="metric mono">{{.ParScore}} runs</td></tr>
        <tr><td class="k">Target to win</td><td class="metric mono">{{.TargetToWin}} runs</td></tr>
        <tr><td class="k">Initial required run-rate</td><td class="mono">{{$.RateDisplay}} rpo</td></tr>
        <tr><td class="k">Runs deducted</td><td class="mono">{{$.DeductedDisplay}}</td></tr>
      </table>
      <details>
        <summary>See the maths</summary>
        {{range $.Explain}}<div class="mono">{{.}}</div>{{end}}
      </details>
    </div>
  {{end}}

  <div class="caption">{{.Caption}}</div>

  <footer>raintarget {{.Version}}</footer>
</body>
</html>`
