package report

import "html/template"

var reportTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Agent Usage Report</title>
<style>
:root {
  --bg: #100F0F; --surface: #1C1B1A; --border: #282726;
  --text: #FFFCF0; --muted: #6F6E69; --dim: #575653;
  --accent: #3AA99F; --green: #879A39; --blue: #4385BE; --red: #D14D41;
}
* { box-sizing: border-box; margin: 0; padding: 0; }
body {
  background: var(--bg); color: var(--text);
  font: 14px/1.5 ui-monospace, "SF Mono", Menlo, Consolas, monospace;
  padding: 2rem; max-width: 1100px; margin: 0 auto;
}
h1 { font-size: 1.3rem; margin-bottom: .25rem; }
.sub { color: var(--muted); margin-bottom: 1.5rem; }
.tabs { display: flex; gap: .5rem; margin-bottom: 1.5rem; flex-wrap: wrap; }
.tabs button {
  background: var(--surface); border: 1px solid var(--border); color: var(--muted);
  padding: .4rem .9rem; border-radius: 6px; cursor: pointer; font: inherit;
}
.tabs button.active { color: var(--bg); background: var(--accent); border-color: var(--accent); }
.cards { display: grid; grid-template-columns: repeat(auto-fit, minmax(150px, 1fr)); gap: .75rem; margin-bottom: 1.5rem; }
.card { background: var(--surface); border: 1px solid var(--border); border-radius: 8px; padding: .9rem; }
.card .label { color: var(--muted); font-size: .75rem; text-transform: uppercase; letter-spacing: .05em; }
.card .value { font-size: 1.4rem; margin-top: .2rem; }
.panel { background: var(--surface); border: 1px solid var(--border); border-radius: 8px; padding: 1rem; margin-bottom: 1.5rem; }
.panel h2 { font-size: .9rem; color: var(--accent); margin-bottom: .75rem; }
.columns { display: grid; grid-template-columns: repeat(auto-fit, minmax(280px, 1fr)); gap: 1.5rem; }
.row { display: flex; align-items: center; gap: .6rem; margin-bottom: .35rem; }
.row .name { flex: 0 0 11em; overflow: hidden; text-overflow: ellipsis; white-space: nowrap; }
.row .bar { height: .8em; background: var(--blue); border-radius: 2px; min-width: 2px; }
.row .num { color: var(--muted); }
.empty { color: var(--dim); padding: 1rem 0; }
svg text { fill: var(--muted); font-size: 10px; }
</style>
</head>
<body>
<h1>Agent Usage Report</h1>
<div class="sub">generated {{.Generated}}</div>
<div class="tabs" id="tabs"></div>
<div class="cards" id="cards"></div>
<div class="panel"><h2>Tokens over time</h2><div id="chart"></div></div>
<div class="columns">
  <div class="panel"><h2>Top tools</h2><div id="tools"></div></div>
  <div class="panel"><h2>Top models</h2><div id="models"></div></div>
  <div class="panel"><h2>Top projects</h2><div id="projects"></div></div>
</div>
<script>
const DATA = {{.Payload}};
const SVG_NS = "http://www.w3.org/2000/svg";

function fmt(n) {
  if (n >= 1e9) return (n / 1e9).toFixed(1) + "B";
  if (n >= 1e6) return (n / 1e6).toFixed(1) + "M";
  if (n >= 1e3) return (n / 1e3).toFixed(1) + "K";
  return String(n);
}

function card(label, value) {
  const div = document.createElement("div");
  div.className = "card";
  div.innerHTML = '<div class="label"></div><div class="value"></div>';
  div.querySelector(".label").textContent = label;
  div.querySelector(".value").textContent = value;
  return div;
}

function renderCards(p) {
  const host = document.getElementById("cards");
  host.replaceChildren(
    card("Sessions", fmt(p.summary.sessions)),
    card("Messages", fmt(p.summary.messages)),
    card("Tool calls", fmt(p.summary.toolCalls)),
    card("Tokens", fmt(p.summary.tokens)),
    card("Projects", fmt(p.summary.projects)),
  );
  if (DATA.showCost) {
    host.appendChild(card("Cost", "$" + p.summary.cost.toFixed(2)));
  }
}

function renderChart(p) {
  const host = document.getElementById("chart");
  host.replaceChildren();
  const series = p.series || [];
  if (!series.length) {
    host.innerHTML = '<div class="empty">no activity in this period</div>';
    return;
  }
  const W = 1000, H = 220, pad = 30;
  const max = Math.max(...series.map(pt => pt.value), 1);
  const bw = (W - pad) / series.length;

  const svg = document.createElementNS(SVG_NS, "svg");
  svg.setAttribute("viewBox", "0 0 " + W + " " + H);
  svg.setAttribute("width", "100%");

  series.forEach((pt, i) => {
    const h = (pt.value / max) * (H - 2 * pad);
    const rect = document.createElementNS(SVG_NS, "rect");
    rect.setAttribute("x", pad + i * bw + 1);
    rect.setAttribute("y", H - pad - h);
    rect.setAttribute("width", Math.max(bw - 2, 1));
    rect.setAttribute("height", h);
    rect.setAttribute("fill", "#4385BE");
    rect.setAttribute("rx", "1");
    const title = document.createElementNS(SVG_NS, "title");
    title.textContent = pt.label + ": " + fmt(pt.value);
    rect.appendChild(title);
    svg.appendChild(rect);
  });

  const step = Math.max(1, Math.floor(series.length / 8));
  series.forEach((pt, i) => {
    if (i % step !== 0) return;
    const text = document.createElementNS(SVG_NS, "text");
    text.setAttribute("x", pad + i * bw + bw / 2);
    text.setAttribute("y", H - 8);
    text.setAttribute("text-anchor", "middle");
    text.textContent = pt.label;
    svg.appendChild(text);
  });

  host.appendChild(svg);
}

function renderRanked(id, rows) {
  const host = document.getElementById(id);
  host.replaceChildren();
  if (!rows || !rows.length) {
    host.innerHTML = '<div class="empty">none</div>';
    return;
  }
  const max = rows[0].value || 1;
  rows.forEach(r => {
    const row = document.createElement("div");
    row.className = "row";
    const name = document.createElement("span");
    name.className = "name";
    name.textContent = r.name;
    const bar = document.createElement("span");
    bar.className = "bar";
    bar.style.width = (r.value / max * 50) + "%";
    const num = document.createElement("span");
    num.className = "num";
    num.textContent = fmt(r.value);
    row.append(name, bar, num);
    host.appendChild(row);
  });
}

function show(name) {
  const p = DATA.periods.find(x => x.name === name) || DATA.periods[0];
  document.querySelectorAll("#tabs button").forEach(b => {
    b.classList.toggle("active", b.dataset.period === p.name);
  });
  renderCards(p);
  renderChart(p);
  renderRanked("tools", p.tools);
  renderRanked("models", p.models);
  renderRanked("projects", p.projects);
}

const tabs = document.getElementById("tabs");
DATA.periods.forEach(p => {
  const b = document.createElement("button");
  b.textContent = p.name;
  b.dataset.period = p.name;
  b.addEventListener("click", () => show(p.name));
  tabs.appendChild(b);
});
show(DATA.defaultPeriod);
</script>
</body>
</html>
`))
