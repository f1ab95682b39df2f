package server

import "html/template"

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>ShopScraper</title>
<style>
body { font-family: sans-serif; margin: 2em; }
.listing { display: flex; gap: 1em; margin-bottom: 1em; }
.listing img { width: 120px; height: 120px; object-fit: contain; }
.pager form { display: inline; }
</style>
</head>
<body>
<form method="post" action="/search">
  <input type="text" name="q" placeholder="Search eBay">
  <button type="submit">Search</button>
</form>

{{range .Listings}}
<div class="listing">
  {{if ne .ImageURL "N/A"}}<img src="{{.ImageURL}}" alt="">{{end}}
  <div>
    {{if ne .Link "N/A"}}<a href="{{.Link}}">{{.Title}}</a>{{else}}{{.Title}}{{end}}
    <div>{{.Price}}</div>
  </div>
</div>
{{else}}
<p>No listings stored.</p>
{{end}}

<div class="pager">
  {{if .HasPrev}}<form method="post" action="/page/prev"><button type="submit">Previous</button></form>{{end}}
  <span>Page {{.PageNumber}} of {{.TotalPages}}</span>
  {{if .HasNext}}<form method="post" action="/page/next"><button type="submit">Next</button></form>{{end}}
  <form method="post" action="/page/jump">
    <input type="number" name="page" min="1" max="{{.TotalPages}}" value="{{.PageNumber}}">
    <button type="submit">Go</button>
  </form>
</div>
</body>
</html>
`))
