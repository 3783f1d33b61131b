package stubstore

import "html/template"

// Markup mirrors the live storefront closely enough that the page objects
// and accessibility checks cannot tell the difference: same test ids, same
// element ids for the totals, same form labels.

const loginHTML = `<!DOCTYPE html>
<html lang="en">
<head><title>Login</title></head>
<body>
<main>
  <h1>Login</h1>
  {{if .Error}}<p data-testid="error-message" role="alert">{{.Error}}</p>{{end}}
  <form method="POST" action="/login/">
    <label for="username">Username</label>
    <input id="username" name="username" type="text" value="{{.Username}}">

    <label for="password">Password</label>
    <input id="password" name="password" type="password">

    <label for="role">Select Role</label>
    <select id="role" name="role">
      <option value="consumer">Consumer</option>
      <option value="business">Business</option>
    </select>

    <button type="submit">Login</button>
  </form>
</main>
</body>
</html>`

const storeHTML = `<!DOCTYPE html>
<html lang="en">
<head><title>Store</title></head>
<body>
<main>
  <h1>The Store</h1>

  <form method="POST" action="/store2/">
    <label for="product">Product</label>
    <select id="product" name="product" data-testid="select-product">
      {{range .Products}}<option value="{{.ID}}">{{.Name}}</option>
      {{end}}
    </select>

    <label for="amount">Amount</label>
    <input id="amount" name="amount" type="text" value="1">

    <button type="submit" data-testid="add-to-cart-button">Add to cart</button>
  </form>

  <section aria-label="Cart totals">
    <p>Total: <span id="totalSum">{{.TotalSum}}</span></p>
    <p>VAT: <span id="totalVAT">{{.TotalVAT}}</span></p>
    <p>Grand total: <span id="grandTotal">{{.GrandTotal}}</span></p>
  </section>

  <table id="productList">
    <caption>Price list</caption>
    <tbody>
      {{range .Rows}}<tr><td>{{.Name}}</td><td>{{.Price}}</td></tr>
      {{end}}
    </tbody>
  </table>
</main>
</body>
</html>`

var (
	loginTemplate = template.Must(template.New("login").Parse(loginHTML))
	storeTemplate = template.Must(template.New("store").Parse(storeHTML))
)
