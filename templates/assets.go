// Package templates renders the proposal builder pages. Components live in
// the .templ files; run templ generate after editing them.
package templates

const pageCSS = `body{font-family:Calibri,Arial,sans-serif;margin:0;display:flex;color:#222}
.sidebar{width:240px;background:#1F4E79;color:#fff;min-height:100vh;padding:16px;box-sizing:border-box}
.sidebar a{color:#fff}.sidebar .brand{font-size:20px;font-weight:bold;text-decoration:none}
.sidebar ul{list-style:none;padding:0}.sidebar li{margin:6px 0}.sidebar li.active a{font-weight:bold}
.sidebar small{display:block;opacity:.7}.catalog{margin-top:24px}
main{flex:1;padding:24px}table{border-collapse:collapse;width:100%;margin:12px 0}
th,td{border:1px solid #ccc;padding:6px 8px;text-align:left}th{background:#D9E2F3}
td.num{text-align:right}.error{color:#b00020}.total td{font-weight:bold;background:#E7E6E6}
.addon td{background:#FCE4D6}form.inline{display:inline}
#toast{position:fixed;bottom:16px;right:16px}.toast{padding:10px 14px;border-radius:4px;color:#fff;margin-top:6px}
.toast.success{background:#2e7d32}.toast.error{background:#b00020}.toast.warning{background:#ef6c00}`

const toastJS = `function showToast(d){var t=document.createElement('div');t.className='toast '+d.type;t.textContent=d.message;document.getElementById('toast').appendChild(t);setTimeout(function(){t.remove()},4000)}
document.body.addEventListener('showToast',function(e){showToast(e.detail)});
(function(){var m=document.cookie.match(/(?:^|; )flash_toast=([^;]*)/);if(m){try{showToast(JSON.parse(decodeURIComponent(m[1].replace(/\+/g,' '))))}catch(e){}document.cookie='flash_toast=; Max-Age=0; path=/'}})();`
